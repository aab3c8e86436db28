// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipelines to function:
//
//   - Loader: Extracts text blocks from raw document bytes
//   - LoaderRegistry: Selects the loader for a file type
//   - Chunker: Cuts parsed documents into embedding-sized chunks
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores vectors and answers nearest-neighbour queries
//   - LLMService: Generates answers from assembled prompts
//   - PromptStore: Supplies prompt templates
//   - SettingsStore: Persists application settings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or loader package
package driven
