package driving

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// ConversationService manages teacher conversations.
type ConversationService interface {
	// Start creates a new conversation.
	Start(ctx context.Context, title string) (*domain.Conversation, error)

	// Get retrieves a conversation by ID.
	Get(ctx context.Context, id string) (*domain.Conversation, error)

	// List returns all conversations, most recent first.
	List(ctx context.Context) ([]domain.Conversation, error)

	// Messages returns a conversation's messages in order.
	Messages(ctx context.Context, id string) ([]domain.Message, error)

	// History returns the role-tagged turns used as prompt history.
	History(ctx context.Context, id string) ([]domain.HistoryEntry, error)

	// Append adds a message to a conversation.
	Append(ctx context.Context, id string, role domain.Role, content string, module *domain.Module) (*domain.Message, error)

	// Delete removes a conversation and its messages.
	Delete(ctx context.Context, id string) error
}
