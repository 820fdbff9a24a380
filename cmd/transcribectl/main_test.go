package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcribe/internal/config"
	"transcribe/internal/database"
)

type cliEnv struct {
	dbPath string
	doc    string
	pages  []string
}

func setupCLITestEnv(t *testing.T) *cliEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "transcribe.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("STORAGE_PUBLIC_BASE_URL", "https://cdn.example.org/pages")
	t.Setenv("TRANSCRIPTION_IMPORT_TYPE", "plain")
	t.Setenv("FIELD_BINDINGS_FILE", "")

	_, _, err := runCLI(t, []string{"migrate"}, "")
	require.NoError(t, err)

	env := &cliEnv{dbPath: dbPath, doc: uuid.NewString(), pages: []string{uuid.NewString(), uuid.NewString()}}
	db, err := database.NewSQLite(config.DatabaseConfig{SQLitePath: dbPath})
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO items (id) VALUES (?)`, env.doc)
	require.NoError(t, err)
	for i, p := range env.pages {
		_, err = db.Exec(`INSERT INTO files (id, item_id, position, original_filename, storage_path, content_type, size) VALUES (?, ?, ?, ?, ?, 'image/jpeg', 1)`,
			p, env.doc, i+1, fmt.Sprintf("scan%03d.jpg", i+1), "files/"+p+".jpg")
		require.NoError(t, err)
	}
	return env
}

func runCLI(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestMigrate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"migrate", "--sqlite-path", env.dbPath}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema ready (sqlite)")
}

func TestPagesAndImport(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"pages", env.doc}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "scan001.jpg")
	assert.Contains(t, out, "scan002.jpg")
	assert.Contains(t, out, "Not Started")
	assert.Less(t, strings.Index(out, env.pages[0]), strings.Index(out, env.pages[1]))

	_, _, err = runCLI(t, []string{"import", env.doc, env.pages[0]}, "Dear Sir,")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(file, []byte("Yours truly"), 0o644))
	_, _, err = runCLI(t, []string{"import", env.doc, env.pages[1], "--file", file}, "")
	require.NoError(t, err)

	out, _, err = runCLI(t, []string{"page", env.doc, env.pages[0]}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Dear Sir,")
	assert.Contains(t, out, "https://cdn.example.org/pages/files/"+env.pages[0]+".jpg")

	out, _, err = runCLI(t, []string{"export", env.doc}, "")
	require.NoError(t, err)
	assert.Equal(t, "Dear Sir,\n\nYours truly\n", out)
}

func TestStatusAndRecalculate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status", env.doc, env.pages[0]}, "")
	require.NoError(t, err)
	assert.Equal(t, "Not Started\n", out)

	out, _, err = runCLI(t, []string{"status", env.doc, env.pages[0], "Completed"}, "")
	require.NoError(t, err)
	assert.Equal(t, "Completed\n", out)

	out, _, err = runCLI(t, []string{"recalculate", env.doc}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "50")

	_, _, err = runCLI(t, []string{"status", env.doc, uuid.NewString()}, "")
	assert.Error(t, err)
}

func TestOption(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"option", "get", "transcription_import_type"}, "")
	assert.Error(t, err)

	out, _, err := runCLI(t, []string{"option", "set", "transcription_import_type", "rich"}, "")
	require.NoError(t, err)
	assert.Equal(t, "transcription_import_type = html\n", out)

	out, _, err = runCLI(t, []string{"option", "get", "transcription_import_type"}, "")
	require.NoError(t, err)
	assert.Equal(t, "html\n", out)

	_, _, err = runCLI(t, []string{"option", "set", "transcription_import_type", "markdown"}, "")
	assert.Error(t, err)
}

func TestUnknownDocument(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"pages", uuid.NewString()}, "")
	assert.Error(t, err)
}
