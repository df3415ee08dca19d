// Package domain defines the core business entities for pragati.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentChunk: A window of manual text with positional metadata
//   - RetrievalResult: A scored chunk returned from similarity search
//   - Module: A structured micro-learning module for a classroom challenge
//   - Conversation / Message: Chat history between a teacher and the assistant
//   - Feedback: A teacher's rating of a generated module
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
