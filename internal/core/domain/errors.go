package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// Saving chunks for a missing document surfaces this error.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a malformed or incomplete record.
	// During batch archiving the offending record is skipped.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunkConfig indicates an unusable chunker configuration,
	// such as an overlap that is not smaller than the chunk size.
	ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

	// ErrEmbedderUnavailable indicates the embedding backend cannot be
	// reached. The caller decides whether to retry or propagate.
	ErrEmbedderUnavailable = errors.New("embedding service unavailable")

	// ErrStoreUnavailable indicates the archive store cannot be reached.
	// Health checks report unhealthy while this persists.
	ErrStoreUnavailable = errors.New("archive store unavailable")
)
