package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// FamilyTranscript is an Android export (24h clock) with an alias-worthy
// sender, a continuation line, media, a link, a deleted message, a system
// notice and an excluded bot sender.
const FamilyTranscript = `1/2/25, 09:00 - Messages and calls are end-to-end encrypted. No one outside of this chat can read them.
1/2/25, 09:00 - Mami: Buenos días familia 😀
1/2/25, 09:01 - Pablo: Hola mami! Como estan?
todo bien por aca
1/2/25, 09:03 - Mami: IMG-20250102-WA0001.jpg (file attached)
1/2/25, 09:04 - Lucia: https://example.com/receta
1/2/25, 23:30 - Pablo: <Media omitted>
1/3/25, 02:15 - Lucia: This message was deleted
1/3/25, 10:00 - Meta AI: Hola, soy Meta AI
`

// IOSTranscript is an iOS export with bracketed headers, seconds and AM/PM
const IOSTranscript = `[1/2/25, 9:00:13 AM] Marta: Buenos días 🌞
[1/2/25, 9:02:40 AM] Pablo: <attached: 00000012-PHOTO-2025-01-02-09-02-40.jpg>
[1/2/25, 11:45:00 PM] Lucia: Buenas noches
que descansen
`

// OutOfOrderTranscript has a message older than the one before it
const OutOfOrderTranscript = `1/3/25, 10:00 - Marta: segundo
1/2/25, 10:00 - Pablo: primero
`

// MixedYearTranscript spans two calendar years
const MixedYearTranscript = `12/31/24, 23:59 - Pablo: feliz año viejo
1/1/25, 00:01 - Marta: feliz año nuevo
1/1/25, 00:02 - Lucia: felicidades
`

// WriteTranscript writes content to dir/name and returns the file path
func WriteTranscript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create transcript directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write transcript: %v", err)
	}
	return path
}

// CreateSQLiteFixture creates a SQLite database at dbPath with a notes table
func CreateSQLiteFixture(t *testing.T, dbPath string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	seedNotes(t, db)
}

// CreateCacheFixture creates a cache file fixture
func CreateCacheFixture(t *testing.T, cachePath string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		t.Fatalf("Failed to create cache directory: %v", err)
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		t.Fatalf("Failed to write cache file: %v", err)
	}
}
