package internal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/chat-wrapped/testutil"
)

func TestOpenDatabase(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr bool
	}{
		{
			name: "valid database",
			setup: func(t *testing.T) string {
				dbPath := filepath.Join(testutil.CreateTempDir(t), "test.db")
				testutil.CreateSQLiteFixture(t, dbPath)
				return dbPath
			},
		},
		{
			name: "non-existent database",
			setup: func(t *testing.T) string {
				// read-only mode never creates the file
				return filepath.Join(testutil.CreateTempDir(t), "nonexistent.db")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := OpenDatabase(tt.setup(t))
			if tt.wantErr {
				var se *StorageError
				if !errors.As(err, &se) || se.Op != "open" {
					t.Errorf("OpenDatabase() error = %v, want open StorageError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenDatabase() error = %v", err)
			}
			defer db.Close()

			if _, err := db.Exec("INSERT INTO notes (body) VALUES ('fourth')"); err == nil {
				t.Error("read-only database accepted a write")
			}
		})
	}
}

func TestOpenWritableDatabase_Creates(t *testing.T) {
	dbPath := filepath.Join(testutil.CreateTempDir(t), "new.db")
	db, err := OpenWritableDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenWritableDatabase() error = %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t (x INTEGER)"); err != nil {
		t.Errorf("write failed: %v", err)
	}
}

func TestListTables(t *testing.T) {
	db := testutil.CreateTestDB(t)

	tables, err := ListTables(db)
	if err != nil {
		t.Fatalf("ListTables() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("ListTables() = %+v, want only notes", tables)
	}

	notes := tables[0]
	if notes.Name != "notes" || notes.Rows != 3 {
		t.Errorf("notes = %+v, want 3 rows", notes)
	}
	want := []ColumnInfo{
		{Name: "id", Type: "INTEGER", PrimaryKey: true},
		{Name: "body", Type: "TEXT", NotNull: true},
	}
	if len(notes.Columns) != len(want) {
		t.Fatalf("Columns = %+v", notes.Columns)
	}
	for i, c := range want {
		if notes.Columns[i] != c {
			t.Errorf("Columns[%d] = %+v, want %+v", i, notes.Columns[i], c)
		}
	}
}

func TestListTables_Archive(t *testing.T) {
	store := NewStorage(testutil.CreateInMemoryDB(t))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	tables, err := ListTables(store.DB())
	if err != nil {
		t.Fatalf("ListTables() error = %v", err)
	}
	var names []string
	for _, tbl := range tables {
		names = append(names, tbl.Name)
	}
	if len(names) != 2 || names[0] != "messages" || names[1] != "sources" {
		t.Errorf("tables = %v, want [messages sources]", names)
	}
}
