package services

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
)

// fakeEmbedder is a deterministic offline embedding service. Texts with an
// explicit vector use it; anything else gets a token-bag hash vector, so
// equal texts always embed identically.
type fakeEmbedder struct {
	dims       int
	vectors    map[string][]float32
	err        error
	badDims    bool
	shortBatch bool
	calls      int
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func newFakeEmbedder(dims int) *fakeEmbedder {
	return &fakeEmbedder{dims: dims, vectors: make(map[string][]float32)}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.badDims {
		return make([]float32, f.dims+1), nil
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return hashVector(text, f.dims), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if f.shortBatch && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int { return f.dims }

func (f *fakeEmbedder) ModelName() string { return "fake-embed" }

func (f *fakeEmbedder) Ping(context.Context) error { return nil }

func (f *fakeEmbedder) Close() error { return nil }

func hashVector(text string, dims int) []float32 {
	v := make([]float32, dims)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		v[int(h.Sum32())%dims]++
	}
	return v
}

// fakeLLM returns a canned answer and records the exact message sequence
// it was invoked with.
type fakeLLM struct {
	answer   string
	err      error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	f.messages = messages
	f.opts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) ModelName() string { return "fake-llm" }

func (f *fakeLLM) Ping(context.Context) error { return nil }

func (f *fakeLLM) Close() error { return nil }

// memCatalog serves a fixed course list.
type memCatalog struct {
	courses []domain.Course
	err     error
	calls   int
}

var _ driven.CatalogStore = (*memCatalog)(nil)

func (c *memCatalog) Load(context.Context) ([]domain.Course, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.courses, nil
}

// memSnapshots is an in-memory snapshot store.
type memSnapshots struct {
	snap    *driven.Snapshot
	saveErr error
}

var _ driven.SnapshotStore = (*memSnapshots)(nil)

func (s *memSnapshots) Save(_ context.Context, snap driven.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = &snap
	return nil
}

func (s *memSnapshots) Load(context.Context) (*driven.Snapshot, error) {
	if s.snap == nil {
		return nil, domain.ErrNotFound
	}
	return s.snap, nil
}

func (s *memSnapshots) Exists(context.Context) (bool, error) {
	return s.snap != nil, nil
}

func (s *memSnapshots) Close() error { return nil }

// fakeRetriever returns preset documents regardless of query.
type fakeRetriever struct {
	docs    []domain.Document
	scored  []domain.ScoredDocument
	err     error
	filters domain.Filters
	lastK   int
}

func (f *fakeRetriever) Search(_ context.Context, _ string, k int, filters domain.Filters) ([]domain.Document, error) {
	f.lastK = k
	f.filters = filters
	if f.err != nil {
		return nil, f.err
	}
	if k < len(f.docs) {
		return f.docs[:k], nil
	}
	return f.docs, nil
}

func (f *fakeRetriever) SearchWithScores(context.Context, string, int) ([]domain.ScoredDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scored, nil
}

func (f *fakeRetriever) Lookup(code string) *domain.Document {
	for i := range f.docs {
		if strings.EqualFold(f.docs[i].ID, strings.TrimSpace(code)) {
			return &f.docs[i]
		}
	}
	return nil
}

func (f *fakeRetriever) Documents() []domain.Document { return f.docs }

var errUpstream = errors.New("upstream unavailable")
