package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/evently/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/evently/internal/dbx"
	"github.com/juju/clock"
)

// BookmarkService keeps the local bookmark list.
type BookmarkService interface {
	// Toggle flips the bookmark on id and reports whether it is now set.
	Toggle(ctx context.Context, id string) (bool, error)
	IsBookmarked(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

type bookmarkService struct {
	db    *sql.DB
	clock clock.Clock
}

func NewBookmarkService(db *sql.DB, clk clock.Clock) BookmarkService {
	if clk == nil {
		clk = clock.WallClock
	}
	return &bookmarkService{db: db, clock: clk}
}

func (b *bookmarkService) repo(db dbx.DBTX) bookmarks.Repository {
	return bookmarks.NewSQLiteRepository(db)
}

func (b *bookmarkService) Toggle(ctx context.Context, id string) (bool, error) {
	var on bool
	err := dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := b.repo(tx)

		exists, err := repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return repo.Remove(ctx, id)
		}
		on = true
		return repo.Add(ctx, id, b.clock.Now().UTC())
	})
	if err != nil {
		return false, fmt.Errorf("toggle bookmark %s: %w", id, err)
	}
	return on, nil
}

func (b *bookmarkService) IsBookmarked(ctx context.Context, id string) (bool, error) {
	return b.repo(b.db).Exists(ctx, id)
}

func (b *bookmarkService) List(ctx context.Context) ([]string, error) {
	return b.repo(b.db).List(ctx)
}
