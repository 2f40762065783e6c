package bookmarks

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/evently/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add is a no-op when the service is already bookmarked.
func (r *SQLiteRepository) Add(ctx context.Context, serviceID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (service_id, created_at) VALUES (?, ?) ON CONFLICT(service_id) DO NOTHING`,
		serviceID, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to add bookmark[%s]: %w", serviceID, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, serviceID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE service_id = ?`, serviceID)
	if err != nil {
		return fmt.Errorf("failed to remove bookmark[%s]: %w", serviceID, err)
	}
	return nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, serviceID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE service_id = ?`, serviceID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check bookmark[%s]: %w", serviceID, err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT service_id FROM bookmarks ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmark rows: %w", err)
	}
	return ids, nil
}
