package postgres

import (
	"context"
	"database/sql"
	"errors"

	"transcribe/internal/repository"
)

// OptionPostgres is a PostgreSQL implementation of repository.OptionRepository.
type OptionPostgres struct {
	db *sql.DB
}

// NewOptionPostgres creates a new OptionPostgres repository.
func NewOptionPostgres(db *sql.DB) *OptionPostgres {
	return &OptionPostgres{db: db}
}

var _ repository.OptionRepository = (*OptionPostgres)(nil)

// Get returns the option value. A missing row is reported as ok=false, not as an error.
func (r *OptionPostgres) Get(ctx context.Context, name string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = $1`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set upserts the option value.
func (r *OptionPostgres) Set(ctx context.Context, name, value string) error {
	const q = `
		INSERT INTO options (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.db.ExecContext(ctx, q, name, value)
	return err
}
