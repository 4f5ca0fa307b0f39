package domain

import (
	"fmt"
	"time"
)

// Article is an inbound news record handed over by the daily pipeline.
// It is the external contract; archiving converts it into a Document.
type Article struct {
	// ID is the pipeline-assigned identifier.
	ID string `json:"id"`

	// Title is the headline.
	Title string `json:"title"`

	// Content is the article body text.
	Content string `json:"content"`

	// PublishedAt is the publication timestamp.
	PublishedAt time.Time `json:"published_at"`

	// Category is the topic label assigned by the pipeline.
	Category string `json:"category"`

	// Source is the publisher or feed name.
	Source string `json:"source"`
}

// Validate checks the fields required by the archive contract.
// A failing article is skipped by the batch, never aborting it.
func (a *Article) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: article id is required", ErrInvalidInput)
	}
	if a.Title == "" {
		return fmt.Errorf("%w: article %s has no title", ErrInvalidInput, a.ID)
	}
	if a.Content == "" {
		return fmt.Errorf("%w: article %s has no content", ErrInvalidInput, a.ID)
	}
	if a.PublishedAt.IsZero() {
		return fmt.Errorf("%w: article %s has no publication date", ErrInvalidInput, a.ID)
	}
	return nil
}

// Document converts the article into an archivable Document.
// The pipeline ID is preserved in metadata for traceability.
func (a *Article) Document(id string, now time.Time) *Document {
	return &Document{
		ID:          id,
		Title:       a.Title,
		Content:     a.Content,
		DocType:     DocTypeArticle,
		Category:    a.Category,
		Source:      a.Source,
		PublishedAt: a.PublishedAt,
		Metadata: map[string]any{
			"pipeline_id": a.ID,
		},
		CreatedAt: now,
	}
}
