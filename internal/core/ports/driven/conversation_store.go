package driven

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// ConversationStore persists conversations and their messages.
type ConversationStore interface {
	// Create stores a new conversation.
	Create(ctx context.Context, conv *domain.Conversation) error

	// Get retrieves a conversation by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Conversation, error)

	// List returns all conversations, most recently updated first.
	List(ctx context.Context) ([]domain.Conversation, error)

	// AppendMessage stores a message and bumps the conversation's updated time.
	// Returns domain.ErrNotFound if the conversation does not exist.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	// Messages returns a conversation's messages in chronological order.
	Messages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// Delete removes a conversation and its messages.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}
