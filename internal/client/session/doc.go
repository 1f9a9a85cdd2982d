// Package session owns the client's authentication state.
//
// A Manager is built once in main and handed to every consumer. It moves
// through three states:
//
//	Unknown ──Restore──▶ Anonymous ◀──SignOut── Authenticated
//	                         └────────SignIn────────▶┘
//
// Unknown means restoration from storage has not finished yet; consumers
// must render it as "loading", not as signed out.
//
// The user is always derived from the token's claims, and a session has a
// user exactly when it has a token that decoded. Tokens are decoded without
// signature verification (see package token).
//
// Failure policy:
//   - Restore never fails: storage or decode problems are logged and the
//     session becomes Anonymous. A corrupt stored token is left in place.
//   - SignIn returns every error, including a decode failure of the token the
//     backend just issued, and leaves the session unchanged on error.
//   - SignOut cannot fail. The persisted token is removed in the background
//     and the outcome is only logged.
//
// Transitions are not atomic across I/O. Two overlapping SignIn calls may
// leave storage holding one token while memory holds the other. Likewise the
// background removal started by SignOut can land after the token written by
// an immediately following SignIn, leaving storage empty while the session is
// Authenticated; the next launch then starts Anonymous.
//
// Observers are notified one change at a time, in the order the changes were
// applied, so the last snapshot an observer receives matches Session().
package session
