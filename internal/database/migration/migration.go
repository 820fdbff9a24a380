package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Dialect selects the SQL flavour of the schema.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

type migrationStep struct {
	Name string
	SQL  string
}

// seedSteps creates the element sets and elements the adapter binds to by default.
// They are shared by both dialects.
var seedSteps = []migrationStep{
	{
		Name: "seed_element_sets",
		SQL: `INSERT INTO element_sets (name) VALUES ('Dublin Core'), ('Scripto')
ON CONFLICT (name) DO NOTHING;`,
	},
	{
		Name: "seed_elements_dublin_core",
		SQL: `INSERT INTO elements (element_set_id, name)
SELECT s.id, 'Title' FROM element_sets s WHERE s.name = 'Dublin Core'
ON CONFLICT (element_set_id, name) DO NOTHING;`,
	},
	{
		Name: "seed_elements_scripto",
		SQL: `INSERT INTO elements (element_set_id, name)
SELECT s.id, e.name FROM element_sets s
CROSS JOIN (
  SELECT 'Transcription' AS name UNION ALL
  SELECT 'Status' UNION ALL
  SELECT 'Percent Completed' UNION ALL
  SELECT 'Percent Needs Review' UNION ALL
  SELECT 'Sort Weight'
) e
WHERE s.name = 'Scripto'
ON CONFLICT (element_set_id, name) DO NOTHING;`,
	},
}

var postgresSteps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_items",
		SQL: `CREATE TABLE IF NOT EXISTS items (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_files",
		SQL: `CREATE TABLE IF NOT EXISTS files (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  item_id           UUID        NOT NULL REFERENCES items (id) ON DELETE CASCADE,
  position          INTEGER     NOT NULL DEFAULT 0,
  original_filename TEXT        NOT NULL,
  storage_path      TEXT        NOT NULL UNIQUE,
  content_type      TEXT        NOT NULL,
  size              BIGINT      NOT NULL CHECK (size >= 0),
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_files_item_position",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_item_position ON files (item_id, position, id);`,
	},
	{
		Name: "create_table_element_sets",
		SQL: `CREATE TABLE IF NOT EXISTS element_sets (
  id   BIGSERIAL PRIMARY KEY,
  name TEXT      NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_elements",
		SQL: `CREATE TABLE IF NOT EXISTS elements (
  id             BIGSERIAL PRIMARY KEY,
  element_set_id BIGINT    NOT NULL REFERENCES element_sets (id) ON DELETE CASCADE,
  name           TEXT      NOT NULL,
  UNIQUE (element_set_id, name)
);`,
	},
	{
		Name: "create_table_element_texts",
		SQL: `CREATE TABLE IF NOT EXISTS element_texts (
  id          BIGSERIAL   PRIMARY KEY,
  record_type TEXT        NOT NULL CHECK (record_type IN ('Item', 'File')),
  record_id   UUID        NOT NULL,
  element_id  BIGINT      NOT NULL REFERENCES elements (id) ON DELETE CASCADE,
  text        TEXT        NOT NULL,
  html        BOOLEAN     NOT NULL DEFAULT false,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_element_texts_record",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_element_texts_record ON element_texts (record_type, record_id, element_id);`,
	},
	{
		Name: "create_table_options",
		SQL: `CREATE TABLE IF NOT EXISTS options (
  name  TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`,
	},
}

var sqliteSteps = []migrationStep{
	{
		Name: "create_table_items",
		SQL: `CREATE TABLE IF NOT EXISTS items (
  id          TEXT     PRIMARY KEY,
  created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  modified_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Name: "create_table_files",
		SQL: `CREATE TABLE IF NOT EXISTS files (
  id                TEXT     PRIMARY KEY,
  item_id           TEXT     NOT NULL REFERENCES items (id) ON DELETE CASCADE,
  position          INTEGER  NOT NULL DEFAULT 0,
  original_filename TEXT     NOT NULL,
  storage_path      TEXT     NOT NULL UNIQUE,
  content_type      TEXT     NOT NULL,
  size              INTEGER  NOT NULL CHECK (size >= 0),
  created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  modified_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Name: "create_index_files_item_position",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_item_position ON files (item_id, position, id);`,
	},
	{
		Name: "create_table_element_sets",
		SQL: `CREATE TABLE IF NOT EXISTS element_sets (
  id   INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT    NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_elements",
		SQL: `CREATE TABLE IF NOT EXISTS elements (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  element_set_id INTEGER NOT NULL REFERENCES element_sets (id) ON DELETE CASCADE,
  name           TEXT    NOT NULL,
  UNIQUE (element_set_id, name)
);`,
	},
	{
		Name: "create_table_element_texts",
		SQL: `CREATE TABLE IF NOT EXISTS element_texts (
  id          INTEGER  PRIMARY KEY AUTOINCREMENT,
  record_type TEXT     NOT NULL CHECK (record_type IN ('Item', 'File')),
  record_id   TEXT     NOT NULL,
  element_id  INTEGER  NOT NULL REFERENCES elements (id) ON DELETE CASCADE,
  text        TEXT     NOT NULL,
  html        INTEGER  NOT NULL DEFAULT 0,
  created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
	},
	{
		Name: "create_index_element_texts_record",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_element_texts_record ON element_texts (record_type, record_id, element_id);`,
	},
	{
		Name: "create_table_options",
		SQL: `CREATE TABLE IF NOT EXISTS options (
  name  TEXT PRIMARY KEY,
  value TEXT NOT NULL
);`,
	},
}

func stepsFor(d Dialect) ([]migrationStep, string, error) {
	switch d {
	case Postgres:
		return append(append([]migrationStep{}, postgresSteps...), seedSteps...),
			"SELECT to_regclass('public.element_texts') IS NOT NULL", nil
	case SQLite:
		return append(append([]migrationStep{}, sqliteSteps...), seedSteps...),
			"SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'element_texts'", nil
	default:
		return nil, "", fmt.Errorf("unsupported migration dialect %q", d)
	}
}

// EnsureMigrated checks if the 'element_texts' table exists and runs migrations if it doesn't.
// target only labels log entries (database host or file path).
func EnsureMigrated(ctx context.Context, db *sql.DB, d Dialect, target string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "database", "db_target", target, "dialect", string(d))
	start := time.Now()

	steps, sentinel, err := stepsFor(d)
	if err != nil {
		return err
	}

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinel).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
