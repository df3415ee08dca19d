package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// Ensure ConversationService implements the interface.
var _ driving.ConversationService = (*ConversationService)(nil)

// ConversationService manages conversations and their messages.
type ConversationService struct {
	store driven.ConversationStore
	now   func() time.Time
}

// NewConversationService creates a new conversation service.
func NewConversationService(store driven.ConversationStore) *ConversationService {
	return &ConversationService{store: store, now: time.Now}
}

// Start creates a new conversation. The title is cut to ConversationTitleLength runes.
func (s *ConversationService) Start(ctx context.Context, title string) (*domain.Conversation, error) {
	now := s.now().UTC()
	conv := &domain.Conversation{
		ID:        uuid.New().String(),
		Title:     domain.ConversationTitle(title),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// Get retrieves a conversation by ID.
func (s *ConversationService) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.store.Get(ctx, id)
}

// List returns all conversations, most recently updated first.
func (s *ConversationService) List(ctx context.Context) ([]domain.Conversation, error) {
	return s.store.List(ctx)
}

// Messages returns a conversation's messages in chronological order.
func (s *ConversationService) Messages(ctx context.Context, id string) ([]domain.Message, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Messages(ctx, id)
}

// History returns the role-tagged turns of a conversation, oldest first.
func (s *ConversationService) History(ctx context.Context, id string) ([]domain.HistoryEntry, error) {
	msgs, err := s.Messages(ctx, id)
	if err != nil {
		return nil, err
	}
	history := make([]domain.HistoryEntry, len(msgs))
	for i, m := range msgs {
		history[i] = domain.HistoryEntry{Role: m.Role, Content: m.Content}
	}
	return history, nil
}

// Append adds a message to a conversation.
func (s *ConversationService) Append(
	ctx context.Context, id string, role domain.Role, content string, module *domain.Module,
) (*domain.Message, error) {
	if role != domain.RoleUser && role != domain.RoleAssistant {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	msg := &domain.Message{
		ID:             uuid.New().String(),
		ConversationID: id,
		Role:           role,
		Content:        content,
		Module:         module,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Delete removes a conversation and its messages.
func (s *ConversationService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
