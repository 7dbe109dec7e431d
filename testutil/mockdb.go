package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an empty in-memory SQLite database. The pool is
// limited to one connection so every query sees the same database.
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestDB creates an in-memory database with a seeded notes table
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	seedNotes(t, db)
	return db
}

// InsertNote inserts one row into the notes table
func InsertNote(t *testing.T, db *sql.DB, body string) {
	t.Helper()
	if _, err := db.Exec("INSERT INTO notes (body) VALUES (?)", body); err != nil {
		t.Fatalf("Failed to insert note: %v", err)
	}
}

func seedNotes(t *testing.T, db *sql.DB) {
	t.Helper()
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS notes (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		body TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create notes table: %v", err)
	}
	for _, body := range []string{"first", "second", "third"} {
		InsertNote(t, db, body)
	}
}
