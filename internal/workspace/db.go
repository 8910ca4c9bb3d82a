package workspace

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// schemaSQL is the DDL executed when creating a new quote file.
const schemaSQL = `
-- Quote metadata (key-value for flexibility)
CREATE TABLE IF NOT EXISTS quote_settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Namespaced session state: each key holds one JSON blob (locations,
-- selection, viewport, panel flags, support selection), overwritten
-- wholesale on save.
CREATE TABLE IF NOT EXISTS session_state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Schema versioning for future migrations
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
INSERT OR IGNORE INTO schema_version (version) VALUES (1);
`

// currentSchemaVersion is the latest schema version this code supports.
const currentSchemaVersion = 1

// OpenDB opens (or creates) a SQLite quote file at filePath and returns the
// connection. It enables foreign keys and WAL journal mode.
func OpenDB(filePath string) (*sql.DB, error) {
	// Ensure the parent directory exists.
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// WAL keeps reads cheap while the debounced writer is active.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	return db, nil
}

// InitSchema creates all tables if they do not already exist.
func InitSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// MigrateSchema checks the current schema version and applies incremental
// migrations. Returns an error if the file version is newer than supported.
func MigrateSchema(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("quote file version %d is newer than supported version %d, please update Quote Builder", version, currentSchemaVersion)
	}
	// Future migrations go here, e.g.:
	// if version < 2 { applyMigrationV2(db); }
	return nil
}
