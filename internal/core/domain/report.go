package domain

import "time"

// ArticleFailure records a single article that could not be archived.
type ArticleFailure struct {
	// ArticleID is the pipeline identifier of the failed record.
	ArticleID string `json:"article_id"`

	// Reason is the failure description.
	Reason string `json:"reason"`
}

// ArchiveReport summarises a batch archive run.
// A batch never aborts on a single bad record; failures are
// accumulated here instead.
type ArchiveReport struct {
	// Processed is the number of articles archived successfully.
	Processed int `json:"processed"`

	// Failed is the number of articles skipped due to errors.
	Failed int `json:"failed"`

	// Chunks is the total number of chunks written.
	Chunks int `json:"chunks"`

	// Failures lists the per-article failures.
	Failures []ArticleFailure `json:"failures,omitempty"`
}

// Record adds a failure for the given article.
func (r *ArchiveReport) Record(articleID string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, ArticleFailure{
		ArticleID: articleID,
		Reason:    err.Error(),
	})
}

// SystemStatus is the health summary reported to external checks.
type SystemStatus struct {
	// StoreHealthy reports whether the archive store is reachable.
	StoreHealthy bool `json:"store_healthy"`

	// EmbedderHealthy reports whether the embedding backend is reachable.
	EmbedderHealthy bool `json:"embedder_healthy"`

	// Documents is the number of archived documents.
	Documents int `json:"documents"`

	// Chunks is the number of stored chunks.
	Chunks int `json:"chunks"`

	// Model is the embedding model name.
	Model string `json:"model"`

	// Dimensions is the embedding vector size.
	Dimensions int `json:"dimensions"`

	// CheckedAt is when the status was gathered.
	CheckedAt time.Time `json:"checked_at"`
}

// Healthy reports whether both backing services are reachable.
func (s *SystemStatus) Healthy() bool {
	return s.StoreHealthy && s.EmbedderHealthy
}
