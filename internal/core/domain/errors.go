package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalogLoad indicates the course catalog could not be loaded.
	// Fatal at startup; there is no partial load.
	ErrCatalogLoad = errors.New("catalog load failed")

	// ErrInvalidCourse indicates a catalog record failed validation.
	ErrInvalidCourse = errors.New("invalid course record")

	// ErrDuplicateCourse indicates two catalog records share a course code.
	ErrDuplicateCourse = errors.New("duplicate course code")

	// ErrEmbeddingService indicates the embedding provider call failed
	// (network, auth, timeout or malformed response).
	ErrEmbeddingService = errors.New("embedding service failed")

	// ErrEmbeddingDimension indicates the provider returned a vector whose
	// dimensionality differs from its declared size.
	ErrEmbeddingDimension = errors.New("embedding dimension mismatch")

	// ErrIndexBuild indicates the vector index could not be built.
	// Fatal at startup or rebuild.
	ErrIndexBuild = errors.New("index build failed")

	// ErrIndexDimensionMismatch indicates a persisted index snapshot was
	// built with a different embedding dimensionality than the current
	// provider declares. Loading must fail rather than return wrong results.
	ErrIndexDimensionMismatch = errors.New("index dimension mismatch")

	// ErrGenerationService indicates the text generation call failed.
	// Fatal for the current turn only; the session remains valid.
	ErrGenerationService = errors.New("generation service failed")

	// ErrAdvisorGeneration wraps a generation failure surfaced through the
	// advisor. The advisor never substitutes a canned answer on failure.
	ErrAdvisorGeneration = errors.New("advisor generation failed")

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates no generation service is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrCatalogTooLarge indicates the catalog exceeds the size ceiling for
	// post-retrieval filtering. The over-fetch heuristic is only sound for
	// a small corpus; beyond the ceiling a filtered index design is needed.
	ErrCatalogTooLarge = errors.New("catalog exceeds post-filter size ceiling")
)
