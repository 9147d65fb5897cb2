// Package sqlite persists index snapshots in a single SQLite file.
//
// A snapshot is the full set of indexed entries plus the embedding model
// identity. The file is the configured index path; its absence is not an
// error, it simply means the index must be built fresh.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// schema defines the snapshot layout: one metadata row and the ordered
// entry rows with embeddings as little-endian float32 blobs.
const schema = `
CREATE TABLE IF NOT EXISTS snapshot_meta (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	model TEXT NOT NULL,
	dimensions INTEGER NOT NULL,
	built_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_entries (
	ordinal INTEGER PRIMARY KEY,
	course_code TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	prerequisites TEXT NOT NULL,
	credits REAL NOT NULL,
	department TEXT NOT NULL,
	level TEXT NOT NULL,
	source TEXT NOT NULL,
	content TEXT NOT NULL,
	embedding BLOB NOT NULL
);
`

// SnapshotStore is a SQLite-backed snapshot store.
type SnapshotStore struct {
	db   *sql.DB
	path string
}

// NewSnapshotStore opens (or creates) the snapshot database at path.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	// WAL mode for safe concurrent readers.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot schema: %w", err)
	}

	return &SnapshotStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save replaces any existing snapshot atomically.
func (s *SnapshotStore) Save(ctx context.Context, snap driven.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_entries`); err != nil {
		return fmt.Errorf("clearing snapshot entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_meta`); err != nil {
		return fmt.Errorf("clearing snapshot meta: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, model, dimensions, built_at)
		VALUES (1, ?, ?, ?)
	`, snap.Model, snap.Dimensions, snap.BuiltAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("writing snapshot meta: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_entries
			(ordinal, course_code, title, description, prerequisites, credits, department, level, source, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing snapshot insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range snap.Entries {
		c := e.Document.Course
		_, err := stmt.ExecContext(ctx, i,
			c.Code, c.Title, c.Description, c.Prerequisites, c.Credits,
			c.Department, c.Level, c.Source,
			e.Document.Content, float32SliceToBytes(e.Embedding))
		if err != nil {
			return fmt.Errorf("writing snapshot entry %s: %w", e.Document.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot. Returns domain.ErrNotFound when none exists.
func (s *SnapshotStore) Load(ctx context.Context) (*driven.Snapshot, error) {
	var snap driven.Snapshot
	var builtAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT model, dimensions, built_at FROM snapshot_meta WHERE id = 1
	`).Scan(&snap.Model, &snap.Dimensions, &builtAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no snapshot at %s", domain.ErrNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot meta: %w", err)
	}

	snap.BuiltAt, err = time.Parse(time.RFC3339Nano, builtAt)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot built_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT course_code, title, description, prerequisites, credits, department, level, source, content, embedding
		FROM snapshot_entries ORDER BY ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Course
		var content string
		var blob []byte
		if err := rows.Scan(&c.Code, &c.Title, &c.Description, &c.Prerequisites, &c.Credits,
			&c.Department, &c.Level, &c.Source, &content, &blob); err != nil {
			return nil, fmt.Errorf("scanning snapshot entry: %w", err)
		}
		snap.Entries = append(snap.Entries, driven.VectorEntry{
			Document:  domain.Document{ID: c.Code, Content: content, Course: c},
			Embedding: bytesToFloat32Slice(blob),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot entries: %w", err)
	}

	return &snap, nil
}

// Exists reports whether a snapshot is present.
func (s *SnapshotStore) Exists(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_meta`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking snapshot presence: %w", err)
	}
	return n > 0, nil
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
