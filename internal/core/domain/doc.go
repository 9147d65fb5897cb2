// Package domain defines the core business entities for the course advisor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Course: One immutable catalog entry
//   - Document: The embeddable, filterable form of a course
//   - Filters: Metadata equality predicates for retrieval
//   - History: The bounded per-session conversation buffer
//   - Advice: The result of one advisor turn
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
