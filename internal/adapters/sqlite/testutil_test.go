// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/esmdiag/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection: every connection to ":memory:"
// would otherwise get its own empty database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedReferences inserts a bare reference record and returns its ID.
func seedReferences(t *testing.T, db *sql.DB, id, diagScript string) string {
	t.Helper()
	if id == "" {
		id = "REF-001"
	}
	if diagScript == "" {
		diagScript = "hyint.r"
	}
	_, err := db.Exec("INSERT INTO references_registry (id, diag_script) VALUES (?, ?)", id, diagScript)
	if err != nil {
		t.Fatalf("failed to seed references: %v", err)
	}
	return id
}
