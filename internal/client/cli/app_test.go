package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/catalog"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/testkit/fakegateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app   *App
	gw    *fakegateway.Gateway
	store *metadata.MemoryRepository
	out   *bytes.Buffer
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	gw := fakegateway.New([]byte("test-secret"))
	srv := httptest.NewServer(gw)
	t.Cleanup(srv.Close)

	api := gateway.New(srv.URL)
	store := metadata.NewMemoryRepository()
	sessions := session.NewManager(api, store, logging.Nop())
	out := &bytes.Buffer{}

	app := &App{
		config:   &config.Config{ServerURL: srv.URL},
		log:      logging.Nop(),
		sessions: sessions,
		products: catalog.NewService(api, sessions),
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      out,
	}
	return &testEnv{app: app, gw: gw, store: store, out: out}
}

// stubInput feeds answers to the prompt seams in order.
func stubInput(t *testing.T, password string, answers ...string) {
	t.Helper()

	oldText, oldPw := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = oldText, oldPw })

	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(io.Writer) (string, error) { return password, nil }
}

func TestApp_RegisterLoginLogout(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	env.app.sessions.Restore(ctx)
	require.Equal(t, "(anonymous)", env.app.getStatus())

	stubInput(t, "pw", "Alice", "alice@example.com")
	require.NoError(t, env.app.Register(ctx))
	assert.Contains(t, env.out.String(), "Account created")
	assert.False(t, env.app.isLoggedIn())

	stubInput(t, "pw", "alice@example.com")
	require.NoError(t, env.app.Login(ctx))
	assert.True(t, env.app.isLoggedIn())
	assert.Equal(t, "(Alice user)", env.app.getStatus())
	assert.Contains(t, env.out.String(), "Signed in as Alice (user)")

	stored, err := env.store.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	env.out.Reset()
	require.NoError(t, env.app.WhoAmI(ctx))
	assert.Contains(t, env.out.String(), "name=Alice role=user")

	require.NoError(t, env.app.Logout(ctx))
	assert.False(t, env.app.isLoggedIn())

	closeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, env.app.sessions.Close(closeCtx))

	stored, err = env.store.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	assert.Nil(t, stored)

	env.out.Reset()
	require.NoError(t, env.app.WhoAmI(ctx))
	assert.Equal(t, "Not signed in\n", env.out.String())
}

func TestApp_LoginRejected(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	env.app.sessions.Restore(ctx)

	stubInput(t, "wrong", "nobody@example.com")
	err := env.app.Login(ctx)

	var reqErr *gateway.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "Invalid credentials", describe(err))
	assert.False(t, env.app.isLoggedIn())
}

func TestApp_StatusLoadingBeforeRestore(t *testing.T) {
	env := newTestApp(t)
	assert.Equal(t, "(loading)", env.app.getStatus())
}

func TestApp_AddAndEditProduct(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	env.app.sessions.Restore(ctx)

	_, err := env.gw.AddUser("Root", "root@example.com", "pw", fakegateway.RoleAdmin)
	require.NoError(t, err)

	stubInput(t, "pw", "root@example.com")
	require.NoError(t, env.app.Login(ctx))

	stubInput(t, "", "Pizza", "9.99", "https://img.example.com/p.png")
	require.NoError(t, env.app.AddProduct(ctx))

	line := strings.TrimSpace(env.out.String()[strings.LastIndex(env.out.String(), "Created product "):])
	id := strings.TrimPrefix(line, "Created product ")
	p, ok := env.gw.Product(id)
	require.True(t, ok)
	assert.Equal(t, "Pizza", p.Name)
	assert.InDelta(t, 9.99, p.Price, 1e-9)

	stubInput(t, "", id, "Pasta", "12.5", "https://img.example.com/q.png")
	require.NoError(t, env.app.EditProduct(ctx))
	assert.Contains(t, env.out.String(), "Updated product "+id)

	p, ok = env.gw.Product(id)
	require.True(t, ok)
	assert.Equal(t, "Pasta", p.Name)
}

func TestApp_AddProductValidation(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	env.app.sessions.Restore(ctx)

	_, err := env.gw.AddUser("Root", "root@example.com", "pw", fakegateway.RoleAdmin)
	require.NoError(t, err)
	stubInput(t, "pw", "root@example.com")
	require.NoError(t, env.app.Login(ctx))

	stubInput(t, "", "Pi", "-1", "not a url")
	err = env.app.AddProduct(ctx)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestApp_AddProductRequiresSession(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()
	env.app.sessions.Restore(ctx)

	stubInput(t, "", "Pizza", "9.99", "https://img.example.com/p.png")
	err := env.app.AddProduct(ctx)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestApp_PromptErrorsPropagate(t *testing.T) {
	env := newTestApp(t)
	ctx := context.Background()

	stubInput(t, "pw")
	err := env.app.Login(ctx)
	require.True(t, errors.Is(err, io.EOF))
}

func TestApp_Statuses(t *testing.T) {
	env := newTestApp(t)
	require.NoError(t, env.app.Statuses(context.Background()))
	assert.Equal(t, "New\nCooking\nDelivering\nDelivered\n", env.out.String())
}
