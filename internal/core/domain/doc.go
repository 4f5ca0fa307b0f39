// Package domain defines the core business entities for newsarch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: An inbound news record from the daily pipeline
//   - Document: An archived article or summary
//   - Chunk: An embedded slice of a document used for retrieval
//   - SearchResult: A ranked hit returned to the caller
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
