package driven

import (
	"context"
	"time"
)

// SnapshotStore persists a built vector index so startup can skip
// re-embedding the catalog. A snapshot is an opaque bundle; its absence is
// not an error, it simply triggers a fresh build.
type SnapshotStore interface {
	// Save writes the full set of entries together with the embedding
	// model identity and dimensionality, replacing any prior snapshot.
	Save(ctx context.Context, snap Snapshot) error

	// Load reads the snapshot back. Returns domain.ErrNotFound when no
	// snapshot exists at the configured location.
	Load(ctx context.Context) (*Snapshot, error)

	// Exists reports whether a snapshot is present.
	Exists(ctx context.Context) (bool, error)

	// Close releases resources.
	Close() error
}

// Snapshot is the persisted form of a built index.
type Snapshot struct {
	// Model is the embedding model the vectors were produced with.
	Model string

	// Dimensions is the embedding dimensionality of every entry.
	// Loading a snapshot whose dimensions differ from the live provider's
	// must fail fast rather than return wrong results.
	Dimensions int

	// BuiltAt is when the index build completed.
	BuiltAt time.Time

	// Entries are the indexed documents with embeddings, in catalog order.
	Entries []VectorEntry
}
