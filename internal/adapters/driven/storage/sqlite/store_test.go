package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-labs/newsarch/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDocument(id, title string, published time.Time) *domain.Document {
	return &domain.Document{
		ID:          id,
		Title:       title,
		Content:     "content of " + title,
		DocType:     domain.DocTypeArticle,
		Category:    "markets",
		Source:      "example-wire",
		PublishedAt: published,
		Metadata:    map[string]any{"pipeline_id": "art-" + id},
		CreatedAt:   time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC),
	}
}

func testChunk(id, docID string, position int, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:         id,
		DocumentID: docID,
		Content:    "chunk " + id,
		Position:   position,
		Embedding:  embedding,
		Metadata:   map[string]any{"model": "test-embed"},
	}
}

func TestStore_Migrations_Idempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestStore_SaveAndGetDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := testDocument("doc-1", "FRB rate decision", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.DocType, got.DocType)
	assert.Equal(t, doc.Category, got.Category)
	assert.Equal(t, "art-doc-1", got.Metadata["pipeline_id"])
	assert.True(t, got.PublishedAt.Equal(doc.PublishedAt))
}

func TestStore_SaveDocument_Invalid(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveDocument(context.Background(), &domain.Document{ID: "doc-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_PatchDocumentMetadata(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := testDocument("doc-1", "FRB rate decision", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveDocument(ctx, doc))

	err := store.PatchDocumentMetadata(ctx, "doc-1", map[string]any{
		"reviewed": true,
		"tag":      "monetary-policy",
	})
	require.NoError(t, err)

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, true, got.Metadata["reviewed"])
	assert.Equal(t, "monetary-policy", got.Metadata["tag"])
	// Existing keys survive the merge.
	assert.Equal(t, "art-doc-1", got.Metadata["pipeline_id"])
}

func TestStore_PatchDocumentMetadata_NotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.PatchDocumentMetadata(context.Background(), "ghost", map[string]any{"k": "v"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SaveChunks_MissingDocument(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveChunks(context.Background(), []domain.Chunk{
		testChunk("c-1", "ghost", 0, []float32{1, 0}),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ChunkRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := testDocument("doc-1", "Title", time.Now().UTC())
	embedding := []float32{0.25, -1.5, 3.75, 0}
	require.NoError(t, store.ArchiveDocument(ctx, doc, []domain.Chunk{
		testChunk("c-1", "doc-1", 0, embedding),
		testChunk("c-2", "doc-1", 1, []float32{1, 2, 3, 4}),
	}))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, 1, chunks[1].Position)
	assert.Equal(t, embedding, chunks[0].Embedding)
	assert.Equal(t, "test-embed", chunks[0].Metadata["model"])
}

func TestStore_DeleteDocument_CascadesToChunks(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := testDocument("doc-1", "Title", time.Now().UTC())
	require.NoError(t, store.ArchiveDocument(ctx, doc, []domain.Chunk{
		testChunk("c-1", "doc-1", 0, []float32{1, 0}),
		testChunk("c-2", "doc-1", 1, []float32{0, 1}),
	}))

	require.NoError(t, store.DeleteDocument(ctx, "doc-1"))

	chunks, err := store.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks, "cascade must remove all chunks")

	hits, err := store.NearestChunks(ctx, []float32{1, 0}, 10, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, hits, "no orphan chunks may remain queryable")
}

func TestStore_NearestChunks_Ranking(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := testDocument("doc-1", "Title", time.Now().UTC())
	require.NoError(t, store.ArchiveDocument(ctx, doc, []domain.Chunk{
		testChunk("orthogonal", "doc-1", 0, []float32{0, 1}),
		testChunk("close", "doc-1", 1, []float32{1, 0.1}),
		testChunk("exact", "doc-1", 2, []float32{2, 0}),
	}))

	hits, err := store.NearestChunks(ctx, []float32{1, 0}, 2, time.Time{})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "exact", hits[0].Chunk.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "close", hits[1].Chunk.ID)
}

func TestStore_NearestChunks_StableTies(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := testDocument("doc-1", "Title", time.Now().UTC())
	require.NoError(t, store.ArchiveDocument(ctx, doc, []domain.Chunk{
		testChunk("first", "doc-1", 0, []float32{1, 0}),
		testChunk("second", "doc-1", 1, []float32{3, 0}), // same direction, same similarity
	}))

	hits, err := store.NearestChunks(ctx, []float32{1, 0}, 10, time.Time{})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].Chunk.ID, "ties break by insertion order")
	assert.Equal(t, "second", hits[1].Chunk.ID)
}

func TestStore_NearestChunks_DateFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	older := testDocument("doc-old", "Old", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := testDocument("doc-new", "New", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.ArchiveDocument(ctx, older, []domain.Chunk{
		testChunk("c-old", "doc-old", 0, []float32{1, 0}),
	}))
	require.NoError(t, store.ArchiveDocument(ctx, newer, []domain.Chunk{
		testChunk("c-new", "doc-new", 0, []float32{1, 0}),
	}))

	hits, err := store.NearestChunks(ctx, []float32{1, 0}, 10,
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c-new", hits[0].Chunk.ID)
}

func TestStore_DeleteDocumentsBefore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveDocument(ctx,
		testDocument("doc-a", "A", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.SaveDocument(ctx,
		testDocument("doc-b", "B", time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, store.SaveDocument(ctx,
		testDocument("doc-c", "C", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))))

	removed, err := store.DeleteDocumentsBefore(ctx, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	docs, _, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, docs)
}

func TestStore_Counts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	docs, chunks, err := store.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, docs)
	assert.Zero(t, chunks)

	doc := testDocument("doc-1", "Title", time.Now().UTC())
	require.NoError(t, store.ArchiveDocument(ctx, doc, []domain.Chunk{
		testChunk("c-1", "doc-1", 0, []float32{1, 0}),
		testChunk("c-2", "doc-1", 1, []float32{0, 1}),
	}))

	docs, chunks, err = store.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, docs)
	assert.Equal(t, 2, chunks)
}

func TestStore_Ping(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestFloat32BlobRoundTrip(t *testing.T) {
	vec := []float32{0, 1.5, -2.25, 3.14159, -0.0001}
	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
