// Package testsupport builds in-memory repositories and fixtures for tests.
package testsupport

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"transcribe/internal/config"
	"transcribe/internal/database"
	"transcribe/internal/database/migration"
	"transcribe/internal/model"
	"transcribe/internal/repository"
	"transcribe/internal/repository/sqlite"
)

// Env is a migrated in-memory SQLite store.
type Env struct {
	DB    *sql.DB
	Store repository.Store
}

// NewEnv opens and migrates an in-memory database that is closed with the test.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	db, dialect, err := database.Open(config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	require.NoError(t, migration.EnsureMigrated(context.Background(), db, dialect, ":memory:", logger))

	return &Env{DB: db, Store: sqlite.NewStore(db)}
}

// AddItem inserts an item and returns its id. An empty id is replaced by a new UUID.
func (e *Env) AddItem(t *testing.T, id string) string {
	t.Helper()
	if id == "" {
		id = uuid.NewString()
	}
	_, err := e.DB.Exec(`INSERT INTO items (id) VALUES (?)`, id)
	require.NoError(t, err)
	return id
}

// AddFile attaches a file to itemID at position and returns the file id.
func (e *Env) AddFile(t *testing.T, itemID, id string, position int, filename string) string {
	t.Helper()
	if id == "" {
		id = uuid.NewString()
	}
	_, err := e.DB.Exec(
		`INSERT INTO files (id, item_id, position, original_filename, storage_path, content_type, size) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, itemID, position, filename, "files/"+id+"/"+filename, "image/jpeg", 1024,
	)
	require.NoError(t, err)
	return id
}

// SetText stores one value of the (set, name) element on rec without clearing earlier values.
func (e *Env) SetText(t *testing.T, rec model.RecordRef, field model.FieldRef, text string) {
	t.Helper()
	ctx := context.Background()
	el, err := e.Store.Elements.FindByName(ctx, field.Set, field.Name)
	require.NoError(t, err)
	_, err = e.Store.ElementTexts.Add(ctx, rec, el.ID, text, false)
	require.NoError(t, err)
}

// Texts returns every stored value of the (set, name) element on rec.
func (e *Env) Texts(t *testing.T, rec model.RecordRef, field model.FieldRef) []model.ElementText {
	t.Helper()
	ctx := context.Background()
	el, err := e.Store.Elements.FindByName(ctx, field.Set, field.Name)
	require.NoError(t, err)
	texts, err := e.Store.ElementTexts.List(ctx, rec, el.ID)
	require.NoError(t, err)
	return texts
}
