package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of driven.ConversationStore.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*domain.Conversation
	messages      map[string][]domain.Message
	order         map[string]int
	seq           int
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		conversations: make(map[string]*domain.Conversation),
		messages:      make(map[string][]domain.Message),
		order:         make(map[string]int),
	}
}

// Create stores a new conversation.
func (s *ConversationStore) Create(_ context.Context, conv *domain.Conversation) error {
	now := time.Now().UTC()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	if conv.UpdatedAt.IsZero() {
		conv.UpdatedAt = conv.CreatedAt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := *conv
	s.conversations[conv.ID] = &c
	s.seq++
	s.order[conv.ID] = s.seq
	return nil
}

// Get retrieves a conversation by ID.
func (s *ConversationStore) Get(_ context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *conv
	return &c, nil
}

// List returns all conversations, most recently updated first.
func (s *ConversationStore) List(_ context.Context) ([]domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		result = append(result, *conv)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		}
		return s.order[result[i].ID] > s.order[result[j].ID]
	})
	return result, nil
}

// AppendMessage stores a message and bumps the conversation's updated time.
func (s *ConversationStore) AppendMessage(_ context.Context, msg *domain.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[msg.ConversationID]
	if !ok {
		return domain.ErrNotFound
	}
	conv.UpdatedAt = msg.CreatedAt
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], *msg)
	return nil
}

// Messages returns a conversation's messages in chronological order.
func (s *ConversationStore) Messages(_ context.Context, conversationID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[conversationID]
	result := make([]domain.Message, len(stored))
	copy(result, stored)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a conversation and its messages.
func (s *ConversationStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.conversations, id)
	delete(s.messages, id)
	delete(s.order, id)
	return nil
}
