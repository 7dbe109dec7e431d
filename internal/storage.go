package internal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS sources (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	path          TEXT NOT NULL UNIQUE,
	imported_at   TEXT NOT NULL,
	message_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	source_id      INTEGER NOT NULL REFERENCES sources(id) ON DELETE CASCADE,
	seq            INTEGER NOT NULL,
	timestamp      TEXT NOT NULL,
	sender         TEXT NOT NULL,
	content        TEXT NOT NULL,
	is_media       INTEGER NOT NULL,
	is_deleted     INTEGER NOT NULL,
	has_emoji      INTEGER NOT NULL,
	has_link       INTEGER NOT NULL,
	word_count     INTEGER NOT NULL,
	media_filename TEXT
);
CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp, source_id, seq);
`

// archiveTimeLayout sorts lexically in chronological order
const archiveTimeLayout = "2006-01-02T15:04:05"

// Storage is a SQLite archive of parsed messages
type Storage struct {
	db *sql.DB
}

// NewStorage wraps an open database
func NewStorage(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// OpenStorage opens or creates the archive at path
func OpenStorage(path string) (*Storage, error) {
	db, err := OpenWritableDatabase(path)
	if err != nil {
		return nil, err
	}
	s := NewStorage(db)
	if err := s.Init(context.Background()); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "write", Err: err}
	}
	return s, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// DB returns the underlying database
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Init creates the archive tables if missing
func (s *Storage) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, archiveSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveMessages replaces the archived messages of source with msgs
func (s *Storage) SaveMessages(ctx context.Context, source string, msgs []Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE source_id IN (SELECT id FROM sources WHERE path = ?)`, source); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE path = ?`, source); err != nil {
		return fmt.Errorf("failed to clear source: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sources (path, imported_at, message_count) VALUES (?, ?, ?)`,
		source, time.Now().UTC().Format(time.RFC3339), len(msgs))
	if err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}
	sourceID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read source id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (source_id, seq, timestamp, sender, content, is_media, is_deleted,
			has_emoji, has_link, word_count, media_filename)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range msgs {
		var filename sql.NullString
		if m.MediaFilename != "" {
			filename = sql.NullString{String: m.MediaFilename, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, sourceID, i, m.Timestamp.Format(archiveTimeLayout), m.Sender, m.Content,
			m.IsMedia, m.IsDeleted, m.HasEmoji, m.HasLink, m.WordCount, filename); err != nil {
			return fmt.Errorf("failed to insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// LoadMessages returns every archived message in chronological order.
// Tokens and emojis are not stored; classifier re-derives them from content.
func (s *Storage) LoadMessages(ctx context.Context, classifier *Classifier) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, sender, content, media_filename
		FROM messages ORDER BY timestamp, source_id, seq`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var msgs []Message
	for rows.Next() {
		var ts string
		var m Message
		var filename sql.NullString
		if err := rows.Scan(&ts, &m.Sender, &m.Content, &filename); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		t, err := time.Parse(archiveTimeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("invalid archived timestamp %q: %w", ts, err)
		}
		m.Timestamp = t
		classifier.Apply(&m)
		if filename.Valid && m.MediaFilename == "" {
			m.MediaFilename = filename.String
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return msgs, nil
}

// ArchivedSource is one imported transcript
type ArchivedSource struct {
	Path         string
	ImportedAt   time.Time
	MessageCount int
}

// Sources lists the imported transcripts
func (s *Storage) Sources(ctx context.Context) ([]ArchivedSource, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, imported_at, message_count FROM sources ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sources []ArchivedSource
	for rows.Next() {
		var src ArchivedSource
		var imported string
		if err := rows.Scan(&src.Path, &imported, &src.MessageCount); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		src.ImportedAt, _ = time.Parse(time.RFC3339, imported)
		sources = append(sources, src)
	}
	return sources, rows.Err()
}
