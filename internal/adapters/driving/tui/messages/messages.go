// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// GenerateRequested is a command to generate a module for a challenge.
type GenerateRequested struct {
	Challenge      string
	ConversationID string
}

// ModuleGenerated carries a generated module back to the model.
type ModuleGenerated struct {
	Result *driving.GenerateModuleResult
	Err    error
}

// FeedbackSubmitted signals a module rating was stored.
type FeedbackSubmitted struct {
	Feedback *domain.Feedback
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChallenge is the challenge input and module view.
	ViewChallenge
	// ViewConversations lists past conversations.
	ViewConversations
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChallenge:
		return "challenge"
	case ViewConversations:
		return "conversations"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ConversationsLoaded carries the list of conversations from the service.
type ConversationsLoaded struct {
	Conversations []domain.Conversation
	Err           error
}

// ConversationSelected signals a conversation was picked to continue.
type ConversationSelected struct {
	Conversation domain.Conversation
}

// MessagesLoaded carries the messages of a conversation.
type MessagesLoaded struct {
	ConversationID string
	Messages       []domain.Message
	Err            error
}

// ConversationDeleted signals a conversation was removed.
type ConversationDeleted struct {
	ID  string
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
