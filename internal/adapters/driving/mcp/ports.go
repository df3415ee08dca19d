package mcp

import (
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval ingests manuals and retrieves context.
	Retrieval driving.RetrievalService

	// Module generates micro-learning modules.
	Module driving.ModuleService

	// Conversation exposes stored conversations as resources.
	Conversation driving.ConversationService

	// Translation translates text into regional languages.
	Translation driving.TranslationService

	// Feedback records module ratings.
	Feedback driving.FeedbackService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// The rest are optional; their tools and resources are not registered.
	return nil
}
