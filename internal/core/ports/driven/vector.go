package driven

import (
	"context"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

// VectorIndex provides exact nearest-neighbour search over the embedded
// catalog documents. The index is built once and is read-only afterwards,
// so concurrent searches need no external synchronisation.
//
// Exact (brute-force) search is deliberate: the catalog is tens to low
// hundreds of entries and citation correctness depends on exact results,
// so approximate search must not be substituted.
type VectorIndex interface {
	// Add inserts a document with its embedding. Insertion order is
	// significant: ties in similarity are broken by it.
	Add(ctx context.Context, doc domain.Document, embedding []float32) error

	// Search returns the k most similar documents by descending cosine
	// similarity, ties broken by insertion order. k is clamped to
	// [0, Len()]; requesting more than available returns all available.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredDocument, error)

	// Entries returns all indexed entries in insertion order.
	// Used for snapshot persistence and direct lookups.
	Entries() []VectorEntry

	// Len returns the number of indexed documents.
	Len() int

	// Dimensions returns the embedding dimensionality the index was
	// created with.
	Dimensions() int
}

// VectorEntry is one indexed document with its embedding.
type VectorEntry struct {
	Document  domain.Document
	Embedding []float32
}

// IndexFactory creates an empty vector index for the given dimensionality.
// Injected into the index manager so core services stay free of adapter
// imports.
type IndexFactory func(dimensions int) (VectorIndex, error)
