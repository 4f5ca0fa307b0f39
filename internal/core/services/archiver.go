package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-labs/newsarch/internal/chunker"
	"github.com/meridian-labs/newsarch/internal/core/domain"
	"github.com/meridian-labs/newsarch/internal/core/ports/driven"
	"github.com/meridian-labs/newsarch/internal/core/ports/driving"
	"github.com/meridian-labs/newsarch/internal/logger"
)

// Ensure ArchiveService implements the interface.
var _ driving.Archiver = (*ArchiveService)(nil)

// ArchiveService coordinates chunking, embedding and persistence for
// pipeline article batches. It is the single entry point the daily
// pipeline drives.
type ArchiveService struct {
	store     driven.ArchiveStore
	embedder  driven.EmbeddingService
	snapshots driven.SnapshotStore
	splitter  *chunker.Splitter
}

// NewArchiveService creates a new archive service.
// The snapshot store is optional (can be nil); without it, raw batch
// snapshots are skipped.
func NewArchiveService(
	store driven.ArchiveStore,
	embedder driven.EmbeddingService,
	snapshots driven.SnapshotStore,
	splitter *chunker.Splitter,
) *ArchiveService {
	return &ArchiveService{
		store:     store,
		embedder:  embedder,
		snapshots: snapshots,
		splitter:  splitter,
	}
}

// ArchiveArticles archives a batch of pipeline articles.
// Each article is validated, chunked, embedded and written in one
// store transaction. A failure on one article is recorded in the
// report and processing continues for the rest.
func (s *ArchiveService) ArchiveArticles(
	ctx context.Context, articles []domain.Article,
) (*domain.ArchiveReport, error) {
	logger.Section("Archive Batch")
	logger.Info("Archiving %d articles", len(articles))

	s.writeSnapshot(ctx, articles)

	report := &domain.ArchiveReport{}
	for i := range articles {
		article := &articles[i]

		chunks, err := s.archiveOne(ctx, article)
		if err != nil {
			logger.Error("Archive failed for article %s: %v", article.ID, err)
			report.Record(article.ID, err)
			continue
		}

		report.Processed++
		report.Chunks += chunks
	}

	logger.Info("Batch complete: %d processed, %d failed, %d chunks",
		report.Processed, report.Failed, report.Chunks)

	return report, nil
}

// archiveOne converts a single article into a document with embedded
// chunks and writes both atomically. Returns the chunk count.
func (s *ArchiveService) archiveOne(ctx context.Context, article *domain.Article) (int, error) {
	if err := article.Validate(); err != nil {
		return 0, err
	}

	doc := article.Document(uuid.New().String(), time.Now().UTC())
	if err := doc.Validate(); err != nil {
		return 0, err
	}

	texts := s.splitter.Split(doc.Content)
	logger.Debug("Article %s: %d chunks", article.ID, len(texts))

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(texts))
	}

	dims := s.embedder.Dimensions()
	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		if len(vectors[i]) != dims {
			return 0, fmt.Errorf("chunk %d: embedding has %d dimensions, want %d",
				i, len(vectors[i]), dims)
		}
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    text,
			Position:   i,
			Embedding:  vectors[i],
			Metadata: map[string]any{
				"model": s.embedder.ModelName(),
			},
		}
	}

	if err := s.store.ArchiveDocument(ctx, doc, chunks); err != nil {
		return 0, fmt.Errorf("store document: %w", err)
	}

	return len(chunks), nil
}

// writeSnapshot records the raw inbound batch for audit purposes.
// Snapshot failures are logged, never fatal.
func (s *ArchiveService) writeSnapshot(ctx context.Context, articles []domain.Article) {
	if s.snapshots == nil || len(articles) == 0 {
		return
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		logger.Warn("Snapshot marshal failed: %v", err)
		return
	}

	name := fmt.Sprintf("batch-%s", time.Now().UTC().Format("150405"))
	path, err := s.snapshots.Save(ctx, time.Now().UTC(), name, data)
	if err != nil {
		logger.Warn("Snapshot write failed: %v", err)
		return
	}
	logger.Debug("Snapshot written to %s", path)
}

// Status reports reachability of the store and embedder plus counts.
func (s *ArchiveService) Status(ctx context.Context) (*domain.SystemStatus, error) {
	status := &domain.SystemStatus{
		Model:      s.embedder.ModelName(),
		Dimensions: s.embedder.Dimensions(),
		CheckedAt:  time.Now().UTC(),
	}

	if err := s.store.Ping(ctx); err != nil {
		logger.Warn("Store ping failed: %v", err)
	} else {
		status.StoreHealthy = true
		docs, chunks, err := s.store.Counts(ctx)
		if err != nil {
			return nil, fmt.Errorf("count archive: %w", err)
		}
		status.Documents = docs
		status.Chunks = chunks
	}

	if err := s.embedder.Ping(ctx); err != nil {
		logger.Warn("Embedder ping failed: %v", err)
	} else {
		status.EmbedderHealthy = true
	}

	return status, nil
}

// Cleanup removes documents published before the cutoff.
// Chunks are removed by the store's cascade.
func (s *ArchiveService) Cleanup(ctx context.Context, before time.Time) (int, error) {
	removed, err := s.store.DeleteDocumentsBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("retention cleanup: %w", err)
	}

	logger.Info("Retention cleanup removed %d documents published before %s",
		removed, before.Format(time.DateOnly))
	return removed, nil
}
