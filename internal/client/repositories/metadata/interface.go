// Package metadata is the client's persistent key/value store. It survives
// process restarts and holds small values such as the session token.
package metadata

import (
	"context"
)

// Repository is a string-keyed byte store.
//
// Get returns (nil, nil) when the key is absent. Delete of an absent key is
// not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
