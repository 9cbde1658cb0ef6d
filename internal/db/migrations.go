package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_references_registry",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_filelist_entries",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_filelist_runs",
		Up:      migrationV3,
	},
}

func createVersionTable(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest applied migration.
func CurrentVersion(database *sql.DB) (int, error) {
	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return currentVersion, nil
}

// LatestVersion returns the version the schema reaches after all migrations.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// RunMigrations executes all pending migrations
func RunMigrations(database *sql.DB) error {
	if err := createVersionTable(database); err != nil {
		return err
	}

	currentVersion, err := CurrentVersion(database)
	if err != nil {
		return err
	}

	// Run pending migrations
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the reference registry and its tag rows
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS references_registry (
			id TEXT PRIMARY KEY,
			diag_script TEXT NOT NULL UNIQUE,
			verbosity INTEGER NOT NULL DEFAULT 0,
			overwrite INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create references_registry table: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS reference_tags (
			reference_id TEXT NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('author', 'contributor', 'diagnostic', 'observation', 'project')),
			position INTEGER NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (reference_id, kind, position),
			FOREIGN KEY (reference_id) REFERENCES references_registry(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create reference_tags table: %w", err)
	}

	return nil
}

// migrationV2 adds the file list that replaced the per-run text file
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS filelist_entries (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			variable TEXT NOT NULL,
			path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, seq)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create filelist_entries table: %w", err)
	}

	_, err = tx.Exec("CREATE INDEX IF NOT EXISTS idx_filelist_variable ON filelist_entries(variable)")
	if err != nil {
		return fmt.Errorf("failed to create filelist index: %w", err)
	}

	return nil
}

// migrationV3 records runs separately so a run with no files is still the latest
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS filelist_runs (
			run_id TEXT PRIMARY KEY,
			variable TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create filelist_runs table: %w", err)
	}

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO filelist_runs (run_id, variable, created_at)
		SELECT run_id, variable, created_at FROM filelist_entries
		WHERE seq = 0
		ORDER BY rowid
	`)
	if err != nil {
		return fmt.Errorf("failed to backfill filelist_runs: %w", err)
	}

	return nil
}
