// Package storage provides SQLite-based persistence for run recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/drift-snake/internal/replay"
)

// ErrNotFound is returned when no recording matches the requested ID.
var ErrNotFound = errors.New("storage: recording not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RecordingEntry is the listing view of a stored recording.
type RecordingEntry struct {
	ID        string
	Seed      int64
	Score     int
	Frames    int
	Digest    uint64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			digest TEXT NOT NULL,
			payload BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_created ON recordings(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_recordings_score ON recordings(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording stores a recording, replacing one with the same ID.
func (s *Store) SaveRecording(rec *replay.Recording) error {
	payload, err := replay.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	// uint64 digests do not fit SQLite integers, keep them as hex
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO recordings (id, seed, score, frames, digest, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.Score, len(rec.Frames), formatDigest(rec.Digest), payload, rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save recording %s: %w", rec.ID, err)
	}
	return nil
}

// Recording loads and decodes a stored recording.
func (s *Store) Recording(id string) (*replay.Recording, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM recordings WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recording: %w", err)
	}

	rec, err := replay.Unmarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return rec, nil
}

// ListRecordings returns the most recent recordings, newest first.
// A limit of zero or less lists everything.
func (s *Store) ListRecordings(limit int) ([]RecordingEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite reads a negative LIMIT as unbounded
	}

	rows, err := s.db.Query(
		`SELECT id, seed, score, frames, digest, created_at
		 FROM recordings
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var entries []RecordingEntry
	for rows.Next() {
		var (
			e       RecordingEntry
			digest  string
			created int64
		)
		if err := rows.Scan(&e.ID, &e.Seed, &e.Score, &e.Frames, &digest, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Digest, _ = strconv.ParseUint(digest, 16, 64)
		e.CreatedAt = time.UnixMilli(created).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestRecording returns the highest scoring recording.
func (s *Store) BestRecording() (*replay.Recording, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM recordings ORDER BY score DESC, created_at ASC LIMIT 1").Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best recording: %w", err)
	}
	return s.Recording(id)
}

// DeleteRecording removes a recording.
func (s *Store) DeleteRecording(id string) error {
	res, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func formatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}
