// Package sqlstore_test contains integration tests for the SQL repositories.
//
// # Schema Protection
//
// setupTestDB is the single point where tests load the schema. It uses
// db.GetSchemaSQL() so tests always run against the authoritative tables.
package sqlstore_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/fleetdesk/internal/adapters/sqlstore"
	"github.com/example/fleetdesk/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", db.SQLiteDSN(":memory:"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// One connection keeps the in-memory database alive and shared.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func setupStore(t *testing.T) (*sqlstore.Store, *sql.DB) {
	t.Helper()
	conn := setupTestDB(t)
	seedDirectory(t, conn)
	return sqlstore.New(conn, db.DriverSQLite), conn
}

// seedDirectory inserts one requester, two drivers and two vehicles.
func seedDirectory(t *testing.T, conn *sql.DB) {
	t.Helper()
	stmts := []struct {
		query string
		args  []any
	}{
		{"INSERT INTO employees (id, first_name, last_name) VALUES (?, ?, ?)", []any{"EMP-001", "Lena", "Moreau"}},
		{"INSERT INTO drivers (id, first_name, last_name, active) VALUES (?, ?, ?, ?)", []any{"DRV-001", "Sam", "Diallo", true}},
		{"INSERT INTO drivers (id, first_name, last_name, active) VALUES (?, ?, ?, ?)", []any{"DRV-002", "Ana", "Costa", true}},
		{"INSERT INTO vehicles (id, registration, capacity_kg, available) VALUES (?, ?, ?, ?)", []any{"VEH-001", "AB123CD", 1200, true}},
		{"INSERT INTO vehicles (id, registration, capacity_kg, available) VALUES (?, ?, ?, ?)", []any{"VEH-002", "EF456GH", 800, true}},
	}
	for _, s := range stmts {
		if _, err := conn.Exec(s.query, s.args...); err != nil {
			t.Fatalf("failed to seed: %v", err)
		}
	}
}

var testScheduled = time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC)
