package driving

import (
	"context"

	"github.com/meridian-labs/newsarch/internal/core/domain"
)

// SearchService answers similarity queries over the archive.
type SearchService interface {
	// Search embeds the query and returns ranked, per-document
	// deduplicated results. An empty archive or a threshold nothing
	// clears yields an empty slice, not an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
