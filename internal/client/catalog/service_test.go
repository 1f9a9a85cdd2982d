package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/token"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/testkit/fakegateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSession session.Snapshot

func (s staticSession) Session() session.Snapshot { return session.Snapshot(s) }

func setup(t *testing.T, role string) (*fakegateway.Gateway, *Service) {
	t.Helper()
	fg := fakegateway.New([]byte("secret"))
	srv := httptest.NewServer(fg)
	t.Cleanup(srv.Close)

	tok, err := fg.IssueToken("u-1", "Alice", role)
	require.NoError(t, err)
	snap := session.Snapshot{State: session.StateAuthenticated, User: &token.User{ID: "u-1", Name: "Alice", Role: role}, Token: tok}

	api := gateway.New(srv.URL, gateway.WithHTTPClient(srv.Client()))
	return fg, NewService(api, staticSession(snap))
}

func TestService_CreateAndUpdate(t *testing.T) {
	fg, svc := setup(t, fakegateway.RoleAdmin)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductForm{Name: "Margherita", Price: "8.5", ImageURL: img})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Margherita", created.Name)
	assert.Equal(t, 8.5, created.Price)

	updated, err := svc.Update(ctx, created.ID, ProductForm{Name: "Margherita XL", Price: "12", ImageURL: img})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	stored, ok := fg.Product(created.ID)
	require.True(t, ok)
	assert.Equal(t, fakegateway.Product{ID: created.ID, Name: "Margherita XL", Price: 12, ImageURL: img}, stored)
}

func TestService_UpdateUnknownProduct(t *testing.T) {
	_, svc := setup(t, fakegateway.RoleAdmin)

	_, err := svc.Update(context.Background(), "nope", ProductForm{Name: "Pizza", Price: "1", ImageURL: img})

	var reqErr *gateway.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "Product not found", reqErr.Message)
}

func TestService_NonAdminRejected(t *testing.T) {
	_, svc := setup(t, fakegateway.RoleUser)

	_, err := svc.Create(context.Background(), ProductForm{Name: "Pizza", Price: "1", ImageURL: img})

	var reqErr *gateway.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
}

func TestService_RequiresSession(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	svc := NewService(gateway.New(srv.URL), staticSession{State: session.StateAnonymous})

	_, err := svc.Create(context.Background(), ProductForm{Name: "Pizza", Price: "1", ImageURL: img})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Zero(t, calls)
}

func TestService_InvalidFormNotSent(t *testing.T) {
	_, svc := setup(t, fakegateway.RoleAdmin)

	_, err := svc.Create(context.Background(), ProductForm{Name: "P", Price: "1", ImageURL: img})
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Update(context.Background(), "", ProductForm{Name: "Pizza", Price: "1", ImageURL: img})
	assert.ErrorIs(t, err, common.ErrorValidation)
}
