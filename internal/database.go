package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens a SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	return openSQLite(path, path+"?mode=ro")
}

// OpenWritableDatabase opens or creates a SQLite database for writing
func OpenWritableDatabase(path string) (*sql.DB, error) {
	return openSQLite(path, path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
}

func openSQLite(path, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: fmt.Errorf("database ping failed: %w", err)}
	}

	return db, nil
}

// ColumnInfo describes one table column
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// TableInfo describes one table and its size
type TableInfo struct {
	Name    string
	Rows    int
	Columns []ColumnInfo
}

// ListTables returns the user tables of db with their schema and row count
func ListTables(db *sql.DB) ([]TableInfo, error) {
	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	tables := make([]TableInfo, 0, len(names))
	for _, name := range names {
		info := TableInfo{Name: name}
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %q", name)).Scan(&info.Rows); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		cols, err := tableSchema(db, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema of %s: %w", name, err)
		}
		info.Columns = cols
		tables = append(tables, info)
	}
	return tables, nil
}

func tableSchema(db *sql.DB, table string) ([]ColumnInfo, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var columns []ColumnInfo
	for rows.Next() {
		var col ColumnInfo
		var cid, notNull, pk int
		var defaultValue sql.NullString
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}
		col.NotNull = notNull == 1
		col.PrimaryKey = pk == 1
		columns = append(columns, col)
	}
	return columns, rows.Err()
}
