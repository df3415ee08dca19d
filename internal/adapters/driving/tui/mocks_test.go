package tui

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// MockModuleService implements driving.ModuleService for testing.
type MockModuleService struct {
	GenerateFunc func(ctx context.Context, req driving.GenerateModuleRequest) (*driving.GenerateModuleResult, error)
}

func (m *MockModuleService) Generate(
	ctx context.Context, req driving.GenerateModuleRequest,
) (*driving.GenerateModuleResult, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, domain.ErrLLMUnavailable
}

// MockConversationService implements driving.ConversationService for testing.
type MockConversationService struct {
	Conversations []domain.Conversation
}

func (m *MockConversationService) Start(_ context.Context, title string) (*domain.Conversation, error) {
	return &domain.Conversation{ID: "new", Title: title}, nil
}

func (m *MockConversationService) Get(_ context.Context, id string) (*domain.Conversation, error) {
	for i := range m.Conversations {
		if m.Conversations[i].ID == id {
			return &m.Conversations[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockConversationService) List(context.Context) ([]domain.Conversation, error) {
	return m.Conversations, nil
}

func (m *MockConversationService) Messages(context.Context, string) ([]domain.Message, error) {
	return nil, nil
}

func (m *MockConversationService) History(context.Context, string) ([]domain.HistoryEntry, error) {
	return nil, nil
}

func (m *MockConversationService) Append(
	context.Context, string, domain.Role, string, *domain.Module,
) (*domain.Message, error) {
	return &domain.Message{}, nil
}

func (m *MockConversationService) Delete(context.Context, string) error {
	return nil
}

// MockFeedbackService implements driving.FeedbackService for testing.
type MockFeedbackService struct {
	Submitted []domain.Feedback
}

func (m *MockFeedbackService) Submit(_ context.Context, fb domain.Feedback) (*domain.Feedback, error) {
	m.Submitted = append(m.Submitted, fb)
	return &fb, nil
}

func (m *MockFeedbackService) List(context.Context) ([]domain.Feedback, error) {
	return m.Submitted, nil
}

func (m *MockFeedbackService) Stats(context.Context) (domain.FeedbackStats, error) {
	return domain.FeedbackStats{TotalCount: len(m.Submitted)}, nil
}

func newTestPorts() *Ports {
	return &Ports{
		Module:       &MockModuleService{},
		Conversation: &MockConversationService{},
		Feedback:     &MockFeedbackService{},
	}
}
