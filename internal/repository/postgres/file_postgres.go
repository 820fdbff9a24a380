package postgres

import (
	"context"
	"database/sql"

	"transcribe/internal/model"
	"transcribe/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, item_id, position, original_filename, storage_path, content_type, size, created_at, modified_at`

func scanFile(s interface{ Scan(...any) error }) (model.File, error) {
	var f model.File
	err := s.Scan(
		&f.ID,
		&f.ItemID,
		&f.Position,
		&f.OriginalFilename,
		&f.StoragePath,
		&f.ContentType,
		&f.Size,
		&f.CreatedAt,
		&f.ModifiedAt,
	)
	return f, err
}

// ListByItem returns the files of an item ordered by position, then id.
func (r *FilePostgres) ListByItem(ctx context.Context, itemID string) ([]model.File, error) {
	if !isUUID(itemID) {
		return []model.File{}, nil
	}
	const q = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE item_id = $1
		ORDER BY position ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, itemID)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// Touch bumps modified_at of the file.
func (r *FilePostgres) Touch(ctx context.Context, id string) error {
	return touch(ctx, r.db, `UPDATE files SET modified_at = now() WHERE id = $1`, id)
}
