// Package metadata is the persistent key/value store of the client. It holds
// the session token and the remembered login email.
package metadata

import (
	"context"
)

// Repository stores string-keyed blobs. Get returns (nil, nil) for a missing
// key and a non-nil slice for a present one, even when it is empty. Delete of
// a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
