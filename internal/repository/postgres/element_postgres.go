package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"transcribe/internal/model"
	"transcribe/internal/repository"
)

// ElementPostgres is a PostgreSQL implementation of repository.ElementRepository.
type ElementPostgres struct {
	db *sql.DB
}

// NewElementPostgres creates a new ElementPostgres repository.
func NewElementPostgres(db *sql.DB) *ElementPostgres {
	return &ElementPostgres{db: db}
}

var _ repository.ElementRepository = (*ElementPostgres)(nil)

// FindByName resolves an element through its element set name.
func (r *ElementPostgres) FindByName(ctx context.Context, setName, name string) (*model.Element, error) {
	const q = `
		SELECT e.id, e.element_set_id, s.name, e.name
		FROM elements e
		JOIN element_sets s ON s.id = e.element_set_id
		WHERE s.name = $1 AND e.name = $2
	`
	var el model.Element
	if err := r.db.QueryRowContext(ctx, q, setName, name).Scan(&el.ID, &el.ElementSetID, &el.SetName, &el.Name); err != nil {
		return nil, err
	}
	return &el, nil
}

// ElementTextPostgres is a PostgreSQL implementation of repository.ElementTextRepository.
type ElementTextPostgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewElementTextPostgres creates a new ElementTextPostgres repository.
func NewElementTextPostgres(db *sql.DB) *ElementTextPostgres {
	return &ElementTextPostgres{db: db, now: func() time.Time { return time.Now().UTC() }}
}

var _ repository.ElementTextRepository = (*ElementTextPostgres)(nil)

// List returns the values of an element on a record, oldest first.
func (r *ElementTextPostgres) List(ctx context.Context, rec model.RecordRef, elementID int64) ([]model.ElementText, error) {
	if !isUUID(rec.ID) {
		return []model.ElementText{}, nil
	}
	const q = `
		SELECT id, record_type, record_id, element_id, text, html, created_at
		FROM element_texts
		WHERE record_type = $1 AND record_id = $2 AND element_id = $3
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}

// DeleteByElement removes every value of the element on the record.
// Deleting nothing is not an error.
func (r *ElementTextPostgres) DeleteByElement(ctx context.Context, rec model.RecordRef, elementID int64) error {
	if !isUUID(rec.ID) {
		return nil
	}
	const q = `DELETE FROM element_texts WHERE record_type = $1 AND record_id = $2 AND element_id = $3`
	_, err := r.db.ExecContext(ctx, q, string(rec.Type), rec.ID, elementID)
	return err
}

// Add inserts a value and returns the stored row.
func (r *ElementTextPostgres) Add(ctx context.Context, rec model.RecordRef, elementID int64, text string, html bool) (*model.ElementText, error) {
	const q = `
		INSERT INTO element_texts (record_type, record_id, element_id, text, html, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if !isUUID(rec.ID) {
		return nil, fmt.Errorf("add element text: record id %q is not a uuid", rec.ID)
	}
	et := model.ElementText{
		RecordType: rec.Type,
		RecordID:   rec.ID,
		ElementID:  elementID,
		Text:       text,
		HTML:       html,
	}
	row := r.db.QueryRowContext(ctx, q, string(rec.Type), rec.ID, elementID, text, html, r.now())
	if err := row.Scan(&et.ID, &et.CreatedAt); err != nil {
		return nil, err
	}
	return &et, nil
}
