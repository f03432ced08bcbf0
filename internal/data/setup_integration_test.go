//go:build integration

package data

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates a new in-memory SQLite database with the full schema.
// It returns the database and a teardown function to be deferred.
func setupTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}
	// An in-memory database exists per connection; keep the pool at one so
	// every statement sees the same schema.
	db.SetMaxOpenConns(1)

	schema, err := os.ReadFile("../../migrations/sqlite/000001_initial_schema.up.sql")
	if err != nil {
		t.Fatalf("Failed to read schema: %v", err)
	}
	db.MustExec(string(schema))

	teardown := func() {
		db.Close()
	}
	return db, teardown
}
