package cli

import (
	"context"
	"errors"
	"time"

	"github.com/meridian-labs/newsarch/internal/adapters/driven/storage/memory"
	"github.com/meridian-labs/newsarch/internal/chunker"
	"github.com/meridian-labs/newsarch/internal/core/domain"
	"github.com/meridian-labs/newsarch/internal/core/services"
)

// fakeEmbedder returns a fixed unit vector for every text so CLI tests
// run without an embedding backend.
type fakeEmbedder struct {
	pingErr error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int              { return 4 }
func (f *fakeEmbedder) ModelName() string            { return "fake" }
func (f *fakeEmbedder) Ping(_ context.Context) error { return f.pingErr }
func (f *fakeEmbedder) Close() error                 { return nil }

// errorSearchService always fails, for error-path tests.
type errorSearchService struct{}

func (e *errorSearchService) Search(_ context.Context, _ string, _ domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, errors.New("backend down")
}

// setupTestServices wires the command package against in-memory
// adapters. The returned cleanup restores the previous services.
func setupTestServices() func() {
	oldStore := archiveStore
	oldEmbedder := embedderClient
	oldArchive := archiveService
	oldSearch := searchService

	store := memory.NewArchiveStore()
	embedder := &fakeEmbedder{}
	splitter, _ := chunker.New()

	archiveStore = store
	embedderClient = embedder
	archiveService = services.NewArchiveService(store, embedder, nil, splitter)
	searchService = services.NewSearchService(store, embedder)

	return func() {
		archiveStore = oldStore
		embedderClient = oldEmbedder
		archiveService = oldArchive
		searchService = oldSearch
	}
}

// seedDocument archives one article through the real service stack.
func seedDocument(id string) error {
	_, err := archiveService.ArchiveArticles(context.Background(), []domain.Article{
		{
			ID:          id,
			Title:       "FRB Holds Rates Steady",
			Content:     "The Federal Reserve held interest rates steady this quarter.",
			PublishedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Category:    "monetary-policy",
			Source:      "newswire",
		},
	})
	return err
}
