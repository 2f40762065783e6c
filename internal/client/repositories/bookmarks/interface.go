// Package bookmarks keeps the ids of services the user bookmarked. Bookmarks
// are local to the client and never sent to the backend.
package bookmarks

import (
	"context"
	"time"
)

type Repository interface {
	Add(ctx context.Context, serviceID string, at time.Time) error
	Remove(ctx context.Context, serviceID string) error
	Exists(ctx context.Context, serviceID string) (bool, error)
	// List returns ids, most recently bookmarked first.
	List(ctx context.Context) ([]string, error)
}
