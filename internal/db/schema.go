package db

import "database/sql"

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// Tests load it through GetSchemaSQL() so repository code that references a
// column missing here fails with "no such column" at test time.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Reference records (one per diagnostic script)
CREATE TABLE IF NOT EXISTS references_registry (
	id TEXT PRIMARY KEY,
	diag_script TEXT NOT NULL UNIQUE,
	verbosity INTEGER NOT NULL DEFAULT 0,
	overwrite INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Ordered reference tags per record and list
CREATE TABLE IF NOT EXISTS reference_tags (
	reference_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('author', 'contributor', 'diagnostic', 'observation', 'project')),
	position INTEGER NOT NULL,
	tag TEXT NOT NULL,
	PRIMARY KEY (reference_id, kind, position),
	FOREIGN KEY (reference_id) REFERENCES references_registry(id) ON DELETE CASCADE
);

-- Append-only file list consumed by downstream diagnostic stages
CREATE TABLE IF NOT EXISTS filelist_entries (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	variable TEXT NOT NULL,
	path TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_filelist_variable ON filelist_entries(variable);

-- One row per run, including runs that resolved no files
CREATE TABLE IF NOT EXISTS filelist_runs (
	run_id TEXT PRIMARY KEY,
	variable TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(database *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(database)
	}

	// Completely fresh install - create modern schema directly
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(database); err != nil {
		return err
	}
	// Mark all migrations as applied for fresh installs
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
