package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/meridian-labs/newsarch/internal/core/domain"
	"github.com/meridian-labs/newsarch/internal/core/ports/driven"
	"github.com/meridian-labs/newsarch/internal/core/ports/driving"
	"github.com/meridian-labs/newsarch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// overfetchFactor is how many extra candidates to request from the
// store so post-filtering (threshold, date range, category, per-document
// dedupe) still fills the requested limit.
const overfetchFactor = 3

// SearchService answers similarity queries over the archive.
type SearchService struct {
	store    driven.ArchiveStore
	embedder driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(store driven.ArchiveStore, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{
		store:    store,
		embedder: embedder,
	}
}

// Search embeds the query and returns ranked results, at most one per
// source document. An empty archive or a threshold nothing clears
// yields an empty slice, not an error.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	internalLimit := limit * overfetchFactor
	logger.Debug("Limit: %d, internal limit: %d, threshold: %.2f", limit, internalLimit, opts.Threshold)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	hits, err := s.store.NearestChunks(ctx, vector, internalLimit, opts.Since)
	if err != nil {
		logger.Warn("Nearest chunk lookup failed: %v", err)
		return nil, fmt.Errorf("nearest chunks: %w", err)
	}
	logger.Debug("Raw hits: %d", len(hits))

	results, err := s.rankAndFilter(ctx, hits, opts, limit)
	if err != nil {
		return nil, err
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}

// rankAndFilter applies the threshold, hydrates documents, filters by
// date range and category, and keeps the best chunk per document.
// Hits arrive already ordered by descending similarity with stable
// ties, so the first hit seen for a document is its best.
func (s *SearchService) rankAndFilter(
	ctx context.Context, hits []driven.VectorHit, opts domain.SearchOptions, limit int,
) ([]domain.SearchResult, error) {
	results := make([]domain.SearchResult, 0, limit)
	seen := make(map[string]bool)
	docs := make(map[string]*domain.Document)

	for _, hit := range hits {
		if hit.Similarity < opts.Threshold {
			// Hits are sorted by score; everything after is below too.
			break
		}

		docID := hit.Chunk.DocumentID
		if seen[docID] {
			continue
		}

		doc, ok := docs[docID]
		if !ok {
			var err error
			doc, err = s.store.GetDocument(ctx, docID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Document deleted between lookup and hydration.
					continue
				}
				return nil, fmt.Errorf("get document %s: %w", docID, err)
			}
			docs[docID] = doc
		}

		if !opts.Until.IsZero() && doc.PublishedAt.After(opts.Until) {
			continue
		}
		if opts.Category != "" && doc.Category != opts.Category {
			continue
		}

		seen[docID] = true
		results = append(results, domain.SearchResult{
			DocumentID:  doc.ID,
			Title:       doc.Title,
			Content:     hit.Chunk.Content,
			Similarity:  hit.Similarity,
			PublishedAt: doc.PublishedAt,
			Category:    doc.Category,
			Metadata:    doc.Metadata,
		})

		if len(results) >= limit {
			break
		}
	}

	return results, nil
}
