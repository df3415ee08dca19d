// Package tui provides an interactive terminal user interface for pragati.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Module generates micro-learning modules. Required.
	Module driving.ModuleService

	// Conversation lists, replays and deletes past conversations.
	Conversation driving.ConversationService

	// Feedback records module ratings.
	Feedback driving.FeedbackService

	// Settings manages application settings.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	module driving.ModuleService,
	conversation driving.ConversationService,
	feedback driving.FeedbackService,
) *Ports {
	return &Ports{
		Module:       module,
		Conversation: conversation,
		Feedback:     feedback,
	}
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Module == nil {
		return ErrMissingModuleService
	}
	if p.Conversation == nil {
		return ErrMissingConversationService
	}
	return nil
}
