package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"transcribe/internal/repository"
)

// NewStore wires every PostgreSQL repository onto one connection pool.
func NewStore(db *sql.DB) repository.Store {
	return repository.Store{
		Items:        NewItemPostgres(db),
		Files:        NewFilePostgres(db),
		Elements:     NewElementPostgres(db),
		ElementTexts: NewElementTextPostgres(db),
		Options:      NewOptionPostgres(db),
	}
}

// isUUID reports whether id can be compared with a UUID column. Postgres rejects
// malformed input (SQLSTATE 22P02) instead of matching no rows, so callers treat
// anything else as absent without querying.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// touch bumps modified_at on one row and reports sql.ErrNoRows when nothing matched.
func touch(ctx context.Context, db *sql.DB, q, id string) error {
	if !isUUID(id) {
		return sql.ErrNoRows
	}
	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
