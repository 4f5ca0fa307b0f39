package driven

import (
	"context"
	"time"

	"github.com/meridian-labs/newsarch/internal/core/domain"
)

// VectorHit represents a similarity lookup result.
type VectorHit struct {
	// Chunk is the matched chunk, embedding included.
	Chunk domain.Chunk

	// Similarity is the cosine similarity against the query vector.
	Similarity float64
}

// ArchiveStore persists documents and their chunk vectors.
// Backed by SQLite; an in-memory implementation exists for tests.
type ArchiveStore interface {
	// SaveDocument inserts a document.
	// Fails with domain.ErrInvalidInput when required fields are missing.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks bulk-inserts chunks referencing an existing document.
	// Fails with domain.ErrNotFound when the owning document does not exist.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// ArchiveDocument inserts a document and its chunks atomically.
	// Readers never observe the document without its chunks.
	ArchiveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// PatchDocumentMetadata merges the given keys into a document's
	// metadata. Documents are otherwise immutable after creation.
	// Fails with domain.ErrNotFound when the document does not exist.
	PatchDocumentMetadata(ctx context.Context, id string, patch map[string]any) error

	// DeleteDocument removes a document and cascades to its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentsBefore removes documents published before the cutoff,
	// cascading to their chunks. Returns the number of documents removed.
	DeleteDocumentsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// NearestChunks returns up to k chunks ordered by descending cosine
	// similarity to the query vector, ties broken by insertion order.
	// A non-zero since restricts to documents published on/after it.
	NearestChunks(ctx context.Context, vector []float32, k int, since time.Time) ([]VectorHit, error)

	// Counts returns the number of stored documents and chunks.
	Counts(ctx context.Context) (documents, chunks int, err error)

	// Ping validates the store is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
