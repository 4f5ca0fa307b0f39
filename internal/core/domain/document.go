package domain

import (
	"fmt"
	"time"
)

// DocType distinguishes archived full articles from generated summaries.
type DocType string

const (
	// DocTypeArticle is a full news article.
	DocTypeArticle DocType = "article"

	// DocTypeSummary is an LLM-generated daily summary.
	DocTypeSummary DocType = "summary"
)

// Valid reports whether the doc type is a known value.
func (t DocType) Valid() bool {
	return t == DocTypeArticle || t == DocTypeSummary
}

// Document represents an archived article or summary.
// It is immutable after creation except for metadata patches,
// and is removed only by retention cleanup.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable headline.
	Title string

	// Content is the full text as received from the pipeline.
	Content string

	// DocType is "article" or "summary".
	DocType DocType

	// Category is the pipeline-assigned topic (e.g. "markets", "fx").
	Category string

	// Source is the publisher or feed the article came from.
	Source string

	// PublishedAt is the publication date.
	PublishedAt time.Time

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was archived.
	CreatedAt time.Time
}

// Validate checks the required fields.
// A document must have a title, content and a known doc type.
func (d *Document) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: document title is required", ErrInvalidInput)
	}
	if d.Content == "" {
		return fmt.Errorf("%w: document content is required", ErrInvalidInput)
	}
	if !d.DocType.Valid() {
		return fmt.Errorf("%w: unknown doc type %q", ErrInvalidInput, d.DocType)
	}
	return nil
}

// Chunk represents an independently embedded slice of a document.
// Chunks are created alongside their document, never mutated, and
// deleted when the document is deleted.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the text slice of this chunk.
	Content string

	// Position is the ordinal position within the document.
	// Positions are contiguous starting at 0, in document order.
	Position int

	// Embedding is the fixed-length vector representation.
	// Its length always equals the embedder's output dimension.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}
