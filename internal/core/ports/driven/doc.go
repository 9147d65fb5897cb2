// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CatalogStore: Loads the static course catalog
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores and searches embedded documents
//   - SnapshotStore: Persists a built index across restarts
//   - LLMService: Generates the advisor's answers
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
