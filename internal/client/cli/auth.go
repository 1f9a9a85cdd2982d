package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// It does not sign in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.sessions.SignUp(ctx, name, email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.sessions.SignIn(ctx, email, password); err != nil {
		return err
	}

	u := a.sessions.Session().User
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", u.Name, u.Role)
	return nil
}

// Logout signs out. It returns as soon as the in-memory session is cleared.
func (a *App) Logout(ctx context.Context) error {
	a.sessions.SignOut()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// WhoAmI prints the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.sessions.Session()
	if !s.Authenticated() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "id=%s name=%s role=%s\n", s.User.ID, s.User.Name, s.User.Role)
	return nil
}
