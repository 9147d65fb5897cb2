package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
	"github.com/campuslabs/advisor-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.IndexManager = (*IndexerService)(nil)

// embedBatchSize bounds how many documents are embedded per provider call.
const embedBatchSize = 32

// IndexerService builds the vector index from the catalog and persists it,
// or restores it from a prior snapshot when dimensions still match.
type IndexerService struct {
	catalog   driven.CatalogStore
	embedder  driven.EmbeddingService
	snapshots driven.SnapshotStore
	newIndex  driven.IndexFactory
}

// NewIndexerService creates the index manager.
func NewIndexerService(
	catalog driven.CatalogStore,
	embedder driven.EmbeddingService,
	snapshots driven.SnapshotStore,
	newIndex driven.IndexFactory,
) *IndexerService {
	return &IndexerService{
		catalog:   catalog,
		embedder:  embedder,
		snapshots: snapshots,
		newIndex:  newIndex,
	}
}

// Ensure returns a ready index, preferring the persisted snapshot.
func (s *IndexerService) Ensure(ctx context.Context, force bool) (driven.VectorIndex, error) {
	if !force {
		idx, err := s.restore(ctx)
		if err == nil {
			return idx, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			// A corrupt or mismatched snapshot must not silently fall
			// back to anything; it surfaces to the caller.
			return nil, err
		}
		logger.Info("No index snapshot found, building fresh")
	}

	return s.build(ctx)
}

// Status describes the current snapshot.
func (s *IndexerService) Status(ctx context.Context) (*driving.IndexStatus, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &driving.IndexStatus{
		Entries:    len(snap.Entries),
		Model:      snap.Model,
		Dimensions: snap.Dimensions,
		BuiltAt:    snap.BuiltAt,
	}, nil
}

// restore loads the snapshot and validates its dimensionality against the
// live embedding provider before reconstructing the index.
func (s *IndexerService) restore(ctx context.Context) (driven.VectorIndex, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}

	if snap.Dimensions != s.embedder.Dimensions() {
		return nil, fmt.Errorf("%w: snapshot has %d dimensions (model %s), provider %s declares %d",
			domain.ErrIndexDimensionMismatch,
			snap.Dimensions, snap.Model, s.embedder.ModelName(), s.embedder.Dimensions())
	}

	idx, err := s.newIndex(snap.Dimensions)
	if err != nil {
		return nil, err
	}
	for _, e := range snap.Entries {
		if err := idx.Add(ctx, e.Document, e.Embedding); err != nil {
			return nil, fmt.Errorf("restore snapshot: %w", err)
		}
	}

	logger.Info("Restored index snapshot: %d entries, %d dimensions", idx.Len(), idx.Dimensions())
	return idx, nil
}

// build loads the catalog, embeds every document in batches, constructs the
// index and persists a snapshot.
func (s *IndexerService) build(ctx context.Context) (driven.VectorIndex, error) {
	logger.Section("Index Build")

	courses, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", domain.ErrIndexBuild)
	}
	logger.Debug("Loaded %d courses", len(courses))

	docs := domain.NewDocuments(courses)

	idx, err := s.newIndex(s.embedder.Dimensions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexBuild, err)
	}

	for start := 0; start < len(docs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, d := range batch {
			texts[i] = d.Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %w", domain.ErrIndexBuild, domain.ErrEmbeddingService, err)
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("%w: got %d embeddings for %d documents",
				domain.ErrIndexBuild, len(vectors), len(texts))
		}

		for i, vector := range vectors {
			if len(vector) != s.embedder.Dimensions() {
				return nil, fmt.Errorf("%w: %w: document %s got %d, declared %d",
					domain.ErrIndexBuild, domain.ErrEmbeddingDimension,
					batch[i].ID, len(vector), s.embedder.Dimensions())
			}
			if err := idx.Add(ctx, batch[i], vector); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrIndexBuild, err)
			}
		}
		logger.Debug("Embedded %d/%d documents", end, len(docs))
	}

	snap := driven.Snapshot{
		Model:      s.embedder.ModelName(),
		Dimensions: s.embedder.Dimensions(),
		BuiltAt:    time.Now().UTC(),
		Entries:    idx.Entries(),
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	logger.Info("Built index: %d entries, %d dimensions, model %s",
		idx.Len(), idx.Dimensions(), s.embedder.ModelName())
	return idx, nil
}
