package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
	"github.com/campuslabs/advisor-cli/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.Retriever = (*RetrieverService)(nil)

// overFetchFactor is how many times k to fetch before post-filtering.
// Chosen empirically to tolerate filter selectivity against a small corpus.
const overFetchFactor = 5

// PostFilterCeiling is the largest catalog size the over-fetch heuristic
// may be applied to. Post-retrieval filtering can under-return results when
// filter selectivity exceeds the over-fetch ratio, which is tolerable only
// for a small corpus. Beyond this a partitioned filtered-index design is
// required instead.
const PostFilterCeiling = 500

// RetrieverService wraps the vector index with over-fetch + post-filter
// logic for metadata-constrained semantic queries.
type RetrieverService struct {
	index    driven.VectorIndex
	embedder driven.EmbeddingService
	byCode   map[string]domain.Document
}

// NewRetrieverService creates a retriever over a fully built index.
// Fails when the catalog exceeds the post-filter size ceiling.
func NewRetrieverService(index driven.VectorIndex, embedder driven.EmbeddingService) (*RetrieverService, error) {
	if index.Len() > PostFilterCeiling {
		return nil, fmt.Errorf("%w: %d entries, ceiling %d", domain.ErrCatalogTooLarge, index.Len(), PostFilterCeiling)
	}

	byCode := make(map[string]domain.Document, index.Len())
	for _, e := range index.Entries() {
		byCode[strings.ToUpper(e.Document.ID)] = e.Document
	}

	return &RetrieverService{
		index:    index,
		embedder: embedder,
		byCode:   byCode,
	}, nil
}

// Search returns up to k documents relevant to the query, restricted by
// the given filters. With filters present it over-fetches
// min(k*overFetchFactor, catalog size) and post-filters, so the result may
// be shorter than k even when more matching courses exist; that is a
// documented outcome, not an error.
func (s *RetrieverService) Search(
	ctx context.Context, query string, k int, filters domain.Filters,
) ([]domain.Document, error) {
	if k <= 0 {
		return []domain.Document{}, nil
	}

	fetchK := k
	if !filters.Empty() {
		fetchK = k * overFetchFactor
		if fetchK > s.index.Len() {
			fetchK = s.index.Len()
		}
		logger.Debug("Filters active (department=%q level=%q), over-fetching %d for k=%d",
			filters.Department, filters.Level, fetchK, k)
	}

	hits, err := s.vectorSearch(ctx, query, fetchK)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, k)
	for _, hit := range hits {
		if !filters.Matches(hit.Document) {
			continue
		}
		docs = append(docs, hit.Document)
		if len(docs) == k {
			break
		}
	}

	logger.Debug("Retrieved %d/%d documents after filtering", len(docs), len(hits))
	return docs, nil
}

// SearchWithScores is the unfiltered variant exposing raw similarity
// scores for diagnostics.
func (s *RetrieverService) SearchWithScores(
	ctx context.Context, query string, k int,
) ([]domain.ScoredDocument, error) {
	if k <= 0 {
		return []domain.ScoredDocument{}, nil
	}
	return s.vectorSearch(ctx, query, k)
}

// Lookup returns the document for an exact course code match.
func (s *RetrieverService) Lookup(code string) *domain.Document {
	doc, ok := s.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}
	return &doc
}

// Documents returns all indexed documents in catalog order.
func (s *RetrieverService) Documents() []domain.Document {
	entries := s.index.Entries()
	docs := make([]domain.Document, len(entries))
	for i, e := range entries {
		docs[i] = e.Document
	}
	return docs
}

// vectorSearch embeds the query and searches the index.
func (s *RetrieverService) vectorSearch(
	ctx context.Context, query string, k int,
) ([]domain.ScoredDocument, error) {
	vector, err := embedChecked(ctx, s.embedder, query)
	if err != nil {
		return nil, err
	}

	hits, err := s.index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return hits, nil
}

// embedChecked embeds one text and verifies the returned dimensionality
// against the provider's declared size before it reaches the index.
func embedChecked(ctx context.Context, embedder driven.EmbeddingService, text string) ([]float32, error) {
	vector, err := embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingService, err)
	}
	if len(vector) != embedder.Dimensions() {
		return nil, fmt.Errorf("%w: got %d, declared %d",
			domain.ErrEmbeddingDimension, len(vector), embedder.Dimensions())
	}
	return vector, nil
}
