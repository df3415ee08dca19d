// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for ingest and module generation to function:
//
//   - TextExtractor: Extracts plain text from PDF bytes
//   - EmbeddingService: Maps text to dense vectors
//   - VectorIndex: Persists chunk vectors and searches them by cosine similarity
//   - LLMService: Generates module text from assembled prompts
//   - ConversationStore: Conversation and message persistence
//   - FeedbackStore: Module feedback persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Translator: Regional language translation. Without it, modules stay in English.
//   - PromptStore: Editable prompt templates. Without it, built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
