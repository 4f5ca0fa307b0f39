package domain

import "time"

// DefaultSearchLimit is applied when a query specifies no limit.
const DefaultSearchLimit = 10

// SearchOptions configures a similarity query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Threshold is the minimum cosine similarity a chunk must score.
	// Hits below the threshold are dropped, never an error.
	Threshold float64

	// Since restricts results to documents published on/after this date.
	// Zero means no lower bound.
	Since time.Time

	// Until restricts results to documents published on/before this date.
	// Zero means no upper bound.
	Until time.Time

	// Category restricts results to a single pipeline category.
	// Empty means no category filter.
	Category string
}

// SearchResult represents a single ranked hit.
// Results are deduplicated per document: only the best-scoring
// chunk of each document is returned.
type SearchResult struct {
	// DocumentID is the archived document that matched.
	DocumentID string `json:"document_id"`

	// Title is the document headline.
	Title string `json:"title"`

	// Content is the matched chunk text.
	Content string `json:"content"`

	// Similarity is the cosine similarity against the query vector.
	Similarity float64 `json:"similarity"`

	// PublishedAt is the document publication date.
	PublishedAt time.Time `json:"published_at"`

	// Category is the document category.
	Category string `json:"category"`

	// Metadata contains the document metadata.
	Metadata map[string]any `json:"metadata,omitempty"`
}
