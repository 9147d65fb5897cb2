package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := NewSnapshotStore(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot() driven.Snapshot {
	ml := domain.Course{
		Code:          "CPSC 340",
		Title:         "Machine Learning and Data Mining",
		Description:   "Models of algorithms for dimensionality reduction, regression, and classification.",
		Prerequisites: "CPSC 221 and MATH 221",
		Credits:       3,
		Department:    "Computer Science",
		Level:         "Third Year",
		Source:        "test-catalog",
	}
	stats := domain.Course{
		Code:        "STAT 200",
		Title:       "Elementary Statistics for Applications",
		Description: "Descriptive and inferential statistics with applications.",
		Credits:     1.5,
		Department:  "Statistics",
		Level:       "Second Year",
		Source:      "test-catalog",
	}
	return driven.Snapshot{
		Model:      "nomic-embed-text",
		Dimensions: 4,
		BuiltAt:    time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Entries: []driven.VectorEntry{
			{Document: domain.NewDocument(ml), Embedding: []float32{0.1, 0.2, 0.3, 0.4}},
			{Document: domain.NewDocument(stats), Embedding: []float32{-0.5, 0.25, 0, 1}},
		},
	}
}

func TestSnapshotStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testSnapshot()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Dimensions, got.Dimensions)
	assert.True(t, want.BuiltAt.Equal(got.BuiltAt))
	require.Len(t, got.Entries, 2)

	// Entries survive the round trip in order, with embeddings intact.
	for i, entry := range got.Entries {
		assert.Equal(t, want.Entries[i].Document, entry.Document)
		assert.Equal(t, want.Entries[i].Embedding, entry.Embedding)
	}
}

func TestSnapshotStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	snap, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, snap)
}

func TestSnapshotStore_Exists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, testSnapshot()))

	ok, err = store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSnapshotStore_SaveReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testSnapshot()
	require.NoError(t, store.Save(ctx, first))

	second := testSnapshot()
	second.Model = "text-embedding-3-small"
	second.Entries = second.Entries[:1]
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", got.Model)
	assert.Len(t, got.Entries, 1)
}

func TestSnapshotStore_ReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	ctx := context.Background()

	store, err := NewSnapshotStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testSnapshot()))
	require.NoError(t, store.Close())

	reopened, err := NewSnapshotStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Entries, 2)
	assert.Equal(t, "nomic-embed-text", got.Model)
}

func TestFloat32Bytes_RoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 0.5, 3.14159}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	assert.Equal(t, in, out)
}
