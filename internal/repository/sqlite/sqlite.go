// Package sqlite implements the repository ports on an embedded SQLite database
// (modernc.org/sqlite). It serves local setups and end-to-end tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"transcribe/internal/model"
	"transcribe/internal/repository"
)

// NewStore wires every SQLite repository onto one database handle.
// The schema must already be migrated with migration.SQLite.
func NewStore(db *sql.DB) repository.Store {
	return repository.Store{
		Items:        &ItemRepository{db: db},
		Files:        &FileRepository{db: db},
		Elements:     &ElementRepository{db: db},
		ElementTexts: &ElementTextRepository{db: db},
		Options:      &OptionRepository{db: db},
	}
}

var (
	_ repository.ItemRepository        = (*ItemRepository)(nil)
	_ repository.FileRepository        = (*FileRepository)(nil)
	_ repository.ElementRepository     = (*ElementRepository)(nil)
	_ repository.ElementTextRepository = (*ElementTextRepository)(nil)
	_ repository.OptionRepository      = (*OptionRepository)(nil)
)

func touch(ctx context.Context, db *sql.DB, q, id string) error {
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

// ItemRepository implements repository.ItemRepository.
type ItemRepository struct {
	db *sql.DB
}

// FindByID fetches a single item by its ID.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*model.Item, error) {
	var it model.Item
	err := r.db.QueryRowContext(ctx, `SELECT id, created_at, modified_at FROM items WHERE id = ?`, id).
		Scan(&it.ID, &it.CreatedAt, &it.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Touch bumps modified_at of the item.
func (r *ItemRepository) Touch(ctx context.Context, id string) error {
	return touch(ctx, r.db, `UPDATE items SET modified_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
}

// FileRepository implements repository.FileRepository.
type FileRepository struct {
	db *sql.DB
}

const fileColumns = `id, item_id, position, original_filename, storage_path, content_type, size, created_at, modified_at`

func scanFile(s interface{ Scan(...any) error }) (model.File, error) {
	var f model.File
	err := s.Scan(&f.ID, &f.ItemID, &f.Position, &f.OriginalFilename, &f.StoragePath, &f.ContentType, &f.Size, &f.CreatedAt, &f.ModifiedAt)
	return f, err
}

// ListByItem returns the files of an item ordered by position, then id.
func (r *FileRepository) ListByItem(ctx context.Context, itemID string) ([]model.File, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+fileColumns+` FROM files WHERE item_id = ? ORDER BY position ASC, id ASC`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Touch bumps modified_at of the file.
func (r *FileRepository) Touch(ctx context.Context, id string) error {
	return touch(ctx, r.db, `UPDATE files SET modified_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
}

// ElementRepository implements repository.ElementRepository.
type ElementRepository struct {
	db *sql.DB
}

// FindByName resolves an element through its element set name.
func (r *ElementRepository) FindByName(ctx context.Context, setName, name string) (*model.Element, error) {
	const q = `
		SELECT e.id, e.element_set_id, s.name, e.name
		FROM elements e
		JOIN element_sets s ON s.id = e.element_set_id
		WHERE s.name = ? AND e.name = ?
	`
	var el model.Element
	if err := r.db.QueryRowContext(ctx, q, setName, name).Scan(&el.ID, &el.ElementSetID, &el.SetName, &el.Name); err != nil {
		return nil, err
	}
	return &el, nil
}

// ElementTextRepository implements repository.ElementTextRepository.
type ElementTextRepository struct {
	db *sql.DB
}

// List returns the values of an element on a record, oldest first.
func (r *ElementTextRepository) List(ctx context.Context, rec model.RecordRef, elementID int64) ([]model.ElementText, error) {
	const q = `
		SELECT id, record_type, record_id, element_id, text, html, created_at
		FROM element_texts
		WHERE record_type = ? AND record_id = ? AND element_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, string(rec.Type), rec.ID, elementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	texts := make([]model.ElementText, 0)
	for rows.Next() {
		var et model.ElementText
		var recordType string
		if err := rows.Scan(&et.ID, &recordType, &et.RecordID, &et.ElementID, &et.Text, &et.HTML, &et.CreatedAt); err != nil {
			return nil, err
		}
		et.RecordType = model.RecordType(recordType)
		texts = append(texts, et)
	}
	return texts, rows.Err()
}

// DeleteByElement removes every value of the element on the record.
func (r *ElementTextRepository) DeleteByElement(ctx context.Context, rec model.RecordRef, elementID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM element_texts WHERE record_type = ? AND record_id = ? AND element_id = ?`,
		string(rec.Type), rec.ID, elementID)
	return err
}

// Add inserts a value and returns the stored row.
func (r *ElementTextRepository) Add(ctx context.Context, rec model.RecordRef, elementID int64, text string, html bool) (*model.ElementText, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO element_texts (record_type, record_id, element_id, text, html, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(rec.Type), rec.ID, elementID, text, html, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.ElementText{
		ID:         id,
		RecordType: rec.Type,
		RecordID:   rec.ID,
		ElementID:  elementID,
		Text:       text,
		HTML:       html,
		CreatedAt:  now,
	}, nil
}

// OptionRepository implements repository.OptionRepository.
type OptionRepository struct {
	db *sql.DB
}

// Get returns the option value. A missing row is reported as ok=false.
func (r *OptionRepository) Get(ctx context.Context, name string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set upserts the option value.
func (r *OptionRepository) Set(ctx context.Context, name, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO options (name, value) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET value = excluded.value`,
		name, value)
	return err
}
