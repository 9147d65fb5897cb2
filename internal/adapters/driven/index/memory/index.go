// Package memory provides an exact in-memory vector index using
// brute-force cosine similarity. At catalog scale (tens to low hundreds
// of entries) a linear scan is both fast enough and exactly correct,
// which matters for citation integrity.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a brute-force exact nearest-neighbour index.
// It is populated once during the build step and read-only afterwards;
// concurrent searches against a fully built index are safe.
type Index struct {
	dimensions int
	entries    []driven.VectorEntry
}

// NewIndex creates an empty index for vectors of the given dimensionality.
func NewIndex(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d", domain.ErrInvalidInput, dimensions)
	}
	return &Index{dimensions: dimensions}, nil
}

// FromEntries restores an index from snapshot entries, preserving order.
func FromEntries(dimensions int, entries []driven.VectorEntry) (*Index, error) {
	idx, err := NewIndex(dimensions)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	for _, e := range entries {
		if err := idx.Add(ctx, e.Document, e.Embedding); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Add inserts a document with its embedding.
func (x *Index) Add(_ context.Context, doc domain.Document, embedding []float32) error {
	if len(embedding) != x.dimensions {
		return fmt.Errorf("%w: document %s has %d dimensions, index expects %d",
			domain.ErrInvalidInput, doc.ID, len(embedding), x.dimensions)
	}
	x.entries = append(x.entries, driven.VectorEntry{Document: doc, Embedding: embedding})
	return nil
}

// Search returns the k most similar documents by descending cosine
// similarity. Ties keep insertion order. k is clamped to [0, Len()].
func (x *Index) Search(_ context.Context, query []float32, k int) ([]domain.ScoredDocument, error) {
	if len(query) != x.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(query), x.dimensions)
	}
	if k < 0 {
		k = 0
	}
	if k > len(x.entries) {
		k = len(x.entries)
	}
	if k == 0 {
		return []domain.ScoredDocument{}, nil
	}

	scored := make([]domain.ScoredDocument, len(x.entries))
	for i, e := range x.entries {
		scored[i] = domain.ScoredDocument{
			Document:   e.Document,
			Similarity: cosineSimilarity(query, e.Embedding),
		}
	}

	// Stable sort so equal similarities keep catalog insertion order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	return scored[:k], nil
}

// Entries returns all indexed entries in insertion order.
func (x *Index) Entries() []driven.VectorEntry {
	out := make([]driven.VectorEntry, len(x.entries))
	copy(out, x.entries)
	return out
}

// Len returns the number of indexed documents.
func (x *Index) Len() int {
	return len(x.entries)
}

// Dimensions returns the embedding dimensionality of the index.
func (x *Index) Dimensions() int {
	return x.dimensions
}

// cosineSimilarity computes cos(θ) = (A · B) / (||A|| × ||B||) in a single
// pass. Returns 0 for zero-norm inputs.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
