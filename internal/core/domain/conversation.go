package domain

import "time"

// Conversation groups the messages exchanged while working on a challenge.
type Conversation struct {
	// ID is the unique identifier.
	ID string `json:"id" yaml:"id"`

	// Title is derived from the first challenge.
	Title string `json:"title" yaml:"title"`

	// CreatedAt is when the conversation started.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is bumped on every appended message.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Message is a single turn in a conversation.
type Message struct {
	// ID is the unique identifier.
	ID string `json:"id" yaml:"id"`

	// ConversationID links to the parent conversation.
	ConversationID string `json:"conversation_id" yaml:"conversation_id"`

	// Role is who wrote the message.
	Role Role `json:"role" yaml:"role"`

	// Content is the message text.
	Content string `json:"content" yaml:"content"`

	// Module is set on assistant messages that carry a generated module.
	Module *Module `json:"module_data,omitempty" yaml:"module_data,omitempty"`

	// CreatedAt is when the message was stored.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ConversationTitleLength is the maximum rune length of a derived conversation title.
const ConversationTitleLength = 50

// ConversationTitle derives a conversation title from a challenge.
func ConversationTitle(challenge string) string {
	runes := []rune(challenge)
	if len(runes) <= ConversationTitleLength {
		return challenge
	}
	return string(runes[:ConversationTitleLength])
}
