package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	v, err := r.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Set(ctx, "auth_token", []byte("one")))
	require.NoError(t, r.Set(ctx, "auth_token", []byte("two")))

	v, err = r.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, []byte("two"), v)

	require.NoError(t, r.Delete(ctx, "auth_token"))
	require.NoError(t, r.Delete(ctx, "auth_token"))

	v, err = r.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestMemoryRepository_CopiesValues(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, r.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), out)

	out[1] = 'Y'
	again, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), again)
}

func TestMemoryRepository_EmptyValueIsPresent(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Empty(t, v)
}

func TestMemoryRepository_CanceledContext(t *testing.T) {
	r := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, r.Set(ctx, "k", []byte("v")), context.Canceled)
	require.ErrorIs(t, r.Delete(ctx, "k"), context.Canceled)
}
