package driving

import (
	"context"
	"time"

	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
)

// IndexManager builds, persists and restores the vector index.
// Building is a one-time, non-concurrent step gating readiness.
type IndexManager interface {
	// Ensure returns a ready index: the persisted snapshot when one exists
	// and matches the embedding provider's dimensionality, otherwise a
	// fresh build from the catalog which is then persisted. With force set,
	// the snapshot is ignored and the index is rebuilt.
	Ensure(ctx context.Context, force bool) (driven.VectorIndex, error)

	// Status describes the current snapshot, or returns domain.ErrNotFound
	// when none exists.
	Status(ctx context.Context) (*IndexStatus, error)
}

// IndexStatus describes a persisted index snapshot.
type IndexStatus struct {
	Entries    int
	Model      string
	Dimensions int
	BuiltAt    time.Time
}
