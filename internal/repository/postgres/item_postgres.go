package postgres

import (
	"context"
	"database/sql"

	"transcribe/internal/model"
	"transcribe/internal/repository"
)

// ItemPostgres is a PostgreSQL implementation of repository.ItemRepository.
type ItemPostgres struct {
	db *sql.DB
}

// NewItemPostgres creates a new ItemPostgres repository.
func NewItemPostgres(db *sql.DB) *ItemPostgres {
	return &ItemPostgres{db: db}
}

var _ repository.ItemRepository = (*ItemPostgres)(nil)

// FindByID fetches a single item by its ID. An id that is not a UUID matches nothing.
func (r *ItemPostgres) FindByID(ctx context.Context, id string) (*model.Item, error) {
	if !isUUID(id) {
		return nil, sql.ErrNoRows
	}
	const q = `
		SELECT id, created_at, modified_at
		FROM items
		WHERE id = $1
	`
	var it model.Item
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&it.ID, &it.CreatedAt, &it.ModifiedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// Touch bumps modified_at of the item.
func (r *ItemPostgres) Touch(ctx context.Context, id string) error {
	return touch(ctx, r.db, `UPDATE items SET modified_at = now() WHERE id = $1`, id)
}
