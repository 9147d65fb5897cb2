package driving

import (
	"context"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

// Retriever combines vector search with metadata equality filtering.
//
// Filtering is applied after an over-fetched vector search, so a filtered
// search may legitimately return fewer than k results even when more
// matching courses exist. Callers must not treat a short result list as
// an error.
type Retriever interface {
	// Search returns up to k documents relevant to the query, restricted
	// by the given filters (AND semantics across set predicates).
	Search(ctx context.Context, query string, k int, filters domain.Filters) ([]domain.Document, error)

	// SearchWithScores is the unfiltered variant exposing raw similarity
	// scores for diagnostics.
	SearchWithScores(ctx context.Context, query string, k int) ([]domain.ScoredDocument, error)

	// Lookup returns the document for an exact course code match,
	// case-insensitively. Returns nil and no error when absent.
	Lookup(code string) *domain.Document

	// Documents returns all indexed documents in catalog order.
	Documents() []domain.Document
}
