// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and as a lightweight dev backend.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/meridian-labs/newsarch/internal/core/domain"
	"github.com/meridian-labs/newsarch/internal/core/ports/driven"
)

// Ensure ArchiveStore implements the interface.
var _ driven.ArchiveStore = (*ArchiveStore)(nil)

// storedChunk pairs a chunk with its insertion sequence number so
// similarity ties rank in insertion order.
type storedChunk struct {
	chunk domain.Chunk
	seq   int
}

// ArchiveStore is an in-memory implementation of driven.ArchiveStore.
type ArchiveStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string][]storedChunk
	seq       int
}

// NewArchiveStore creates a new in-memory archive store.
func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string][]storedChunk),
	}
}

// SaveDocument stores a document after validating required fields.
func (s *ArchiveStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// SaveChunks stores chunks for an existing document.
func (s *ArchiveStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveChunksLocked(chunks)
}

func (s *ArchiveStore) saveChunksLocked(chunks []domain.Chunk) error {
	// Validate every owning document before writing anything, so a bad
	// batch leaves the store untouched.
	for _, chunk := range chunks {
		if _, ok := s.documents[chunk.DocumentID]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, chunk := range chunks {
		s.seq++
		s.chunks[chunk.DocumentID] = append(s.chunks[chunk.DocumentID], storedChunk{chunk: chunk, seq: s.seq})
	}
	return nil
}

// ArchiveDocument stores a document and its chunks under one lock so
// readers never observe the document without its chunks.
func (s *ArchiveStore) ArchiveDocument(_ context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	if len(chunks) == 0 {
		return nil
	}
	return s.saveChunksLocked(chunks)
}

// GetDocument retrieves a document by ID.
func (s *ArchiveStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetChunks retrieves all chunks for a document, ordered by position.
func (s *ArchiveStore) GetChunks(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.chunks[documentID]
	chunks := make([]domain.Chunk, len(stored))
	for i, sc := range stored {
		chunks[i] = sc.chunk
	}
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Position < chunks[j].Position
	})
	return chunks, nil
}

// PatchDocumentMetadata merges the patch into a document's metadata.
func (s *ArchiveStore) PatchDocumentMetadata(_ context.Context, id string, patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any, len(patch))
	}
	for k, v := range patch {
		doc.Metadata[k] = v
	}
	s.documents[id] = doc
	return nil
}

// DeleteDocument removes a document and its chunks.
func (s *ArchiveStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	delete(s.chunks, id)
	return nil
}

// DeleteDocumentsBefore removes documents published before the cutoff.
func (s *ArchiveStore) DeleteDocumentsBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, doc := range s.documents {
		if doc.PublishedAt.Before(cutoff) {
			delete(s.documents, id)
			delete(s.chunks, id)
			removed++
		}
	}
	return removed, nil
}

// NearestChunks ranks all stored chunks by cosine similarity to the
// query vector. Ties rank in insertion order.
func (s *ArchiveStore) NearestChunks(
	_ context.Context, vector []float32, k int, since time.Time,
) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		hit driven.VectorHit
		seq int
	}

	var candidates []scored
	for docID, stored := range s.chunks {
		doc, ok := s.documents[docID]
		if !ok {
			continue
		}
		if !since.IsZero() && doc.PublishedAt.Before(since) {
			continue
		}
		for _, sc := range stored {
			candidates = append(candidates, scored{
				hit: driven.VectorHit{
					Chunk:      sc.chunk,
					Similarity: cosineSimilarity(vector, sc.chunk.Embedding),
				},
				seq: sc.seq,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].hit.Similarity != candidates[j].hit.Similarity {
			return candidates[i].hit.Similarity > candidates[j].hit.Similarity
		}
		return candidates[i].seq < candidates[j].seq
	})

	if k > 0 && k < len(candidates) {
		candidates = candidates[:k]
	}

	hits := make([]driven.VectorHit, len(candidates))
	for i, c := range candidates {
		hits[i] = c.hit
	}
	return hits, nil
}

// Counts returns the number of stored documents and chunks.
func (s *ArchiveStore) Counts(_ context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunkCount := 0
	for _, stored := range s.chunks {
		chunkCount += len(stored)
	}
	return len(s.documents), chunkCount, nil
}

// Ping always succeeds for the in-memory store.
func (s *ArchiveStore) Ping(_ context.Context) error {
	return nil
}

// Close releases nothing for the in-memory store.
func (s *ArchiveStore) Close() error {
	return nil
}

// cosineSimilarity computes the normalised dot product of two vectors.
// Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
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
