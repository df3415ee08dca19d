package mcp

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	ingested *driving.IngestRequest
	results  []domain.RetrievalResult
	stats    domain.IndexStats
	topK     int
	err      error
}

func (m *mockRetrievalService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.IngestResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.ingested = &req
	return &domain.IngestResult{DocumentID: domain.DocumentID(req.Data), Filename: req.Filename, ChunksCreated: 2}, nil
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, topK int) ([]domain.RetrievalResult, error) {
	m.topK = topK
	return m.results, m.err
}

func (m *mockRetrievalService) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockRetrievalService) Drop(_ context.Context) error {
	return m.err
}

// mockModuleService is a mock implementation of driving.ModuleService.
type mockModuleService struct {
	req    driving.GenerateModuleRequest
	result *driving.GenerateModuleResult
	err    error
}

func (m *mockModuleService) Generate(_ context.Context, req driving.GenerateModuleRequest) (*driving.GenerateModuleResult, error) {
	m.req = req
	return m.result, m.err
}

// mockConversationService is a mock implementation of driving.ConversationService.
type mockConversationService struct {
	conv     *domain.Conversation
	messages []domain.Message
	err      error
}

func (m *mockConversationService) Start(_ context.Context, _ string) (*domain.Conversation, error) {
	return m.conv, m.err
}

func (m *mockConversationService) Get(_ context.Context, _ string) (*domain.Conversation, error) {
	if m.conv == nil && m.err == nil {
		return nil, domain.ErrNotFound
	}
	return m.conv, m.err
}

func (m *mockConversationService) List(_ context.Context) ([]domain.Conversation, error) {
	return nil, m.err
}

func (m *mockConversationService) Messages(_ context.Context, _ string) ([]domain.Message, error) {
	return m.messages, m.err
}

func (m *mockConversationService) History(_ context.Context, _ string) ([]domain.HistoryEntry, error) {
	return nil, m.err
}

func (m *mockConversationService) Append(
	_ context.Context, _ string, _ domain.Role, _ string, _ *domain.Module,
) (*domain.Message, error) {
	return nil, m.err
}

func (m *mockConversationService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockTranslationService is a mock implementation of driving.TranslationService.
type mockTranslationService struct {
	err error
}

func (m *mockTranslationService) Translate(_ context.Context, text, _, tgtLang string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return tgtLang + ":" + text, nil
}

func (m *mockTranslationService) TranslateBatch(_ context.Context, texts []string, _, _ string) ([]string, error) {
	return texts, m.err
}

func (m *mockTranslationService) TranslateModule(_ context.Context, module *domain.Module, _ string) (*domain.Module, error) {
	return module, m.err
}

func (m *mockTranslationService) Languages() []domain.Language {
	return []domain.Language{{Code: "hin_Deva", Name: "Hindi"}}
}

func (m *mockTranslationService) Available() bool { return true }

// mockFeedbackService is a mock implementation of driving.FeedbackService.
type mockFeedbackService struct {
	submitted domain.Feedback
	err       error
}

func (m *mockFeedbackService) Submit(_ context.Context, fb domain.Feedback) (*domain.Feedback, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.submitted = fb
	fb.ID = "fb-1"
	return &fb, nil
}

func (m *mockFeedbackService) List(_ context.Context) ([]domain.Feedback, error) {
	return nil, m.err
}

func (m *mockFeedbackService) Stats(_ context.Context) (domain.FeedbackStats, error) {
	return domain.FeedbackStats{}, m.err
}
