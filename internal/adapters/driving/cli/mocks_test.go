package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// runCommand executes the root command with args against the given services
// and returns its output. Flags and services are reset afterwards.
func runCommand(t *testing.T, services Services, args ...string) (string, error) {
	t.Helper()

	SetServices(services)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		SetServices(Services{})
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

type mockRetrievalService struct {
	mock.Mock
}

func (m *mockRetrievalService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.IngestResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestResult), args.Error(1)
}

func (m *mockRetrievalService) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error) {
	args := m.Called(ctx, query, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RetrievalResult), args.Error(1)
}

func (m *mockRetrievalService) Stats(ctx context.Context) (domain.IndexStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.IndexStats), args.Error(1)
}

func (m *mockRetrievalService) Drop(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockModuleService struct {
	mock.Mock
}

func (m *mockModuleService) Generate(ctx context.Context, req driving.GenerateModuleRequest) (*driving.GenerateModuleResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driving.GenerateModuleResult), args.Error(1)
}

type mockConversationService struct {
	mock.Mock
}

func (m *mockConversationService) Start(ctx context.Context, title string) (*domain.Conversation, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockConversationService) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockConversationService) List(ctx context.Context) ([]domain.Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *mockConversationService) Messages(ctx context.Context, id string) ([]domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockConversationService) History(ctx context.Context, id string) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *mockConversationService) Append(
	ctx context.Context, id string, role domain.Role, content string, module *domain.Module,
) (*domain.Message, error) {
	args := m.Called(ctx, id, role, content, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockConversationService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockFeedbackService struct {
	mock.Mock
}

func (m *mockFeedbackService) Submit(ctx context.Context, fb domain.Feedback) (*domain.Feedback, error) {
	args := m.Called(ctx, fb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Feedback), args.Error(1)
}

func (m *mockFeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *mockFeedbackService) Stats(ctx context.Context) (domain.FeedbackStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.FeedbackStats), args.Error(1)
}

type mockTranslationService struct {
	mock.Mock
}

func (m *mockTranslationService) Translate(ctx context.Context, text, srcLang, tgtLang string) (string, error) {
	args := m.Called(ctx, text, srcLang, tgtLang)
	return args.String(0), args.Error(1)
}

func (m *mockTranslationService) TranslateBatch(ctx context.Context, texts []string, srcLang, tgtLang string) ([]string, error) {
	args := m.Called(ctx, texts, srcLang, tgtLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockTranslationService) TranslateModule(ctx context.Context, module *domain.Module, tgtLang string) (*domain.Module, error) {
	args := m.Called(ctx, module, tgtLang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Module), args.Error(1)
}

func (m *mockTranslationService) Languages() []domain.Language {
	return m.Called().Get(0).([]domain.Language)
}

func (m *mockTranslationService) Available() bool {
	return m.Called().Bool(0)
}

type mockHealthService struct {
	mock.Mock
}

func (m *mockHealthService) Check(ctx context.Context) domain.HealthReport {
	return m.Called(ctx).Get(0).(domain.HealthReport)
}

type mockSettingsService struct {
	mock.Mock
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	return m.Called(settings).Error(0)
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	return m.Called(provider, model, apiKey).Error(0)
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	return m.Called(provider, model, apiKey).Error(0)
}

func (m *mockSettingsService) SetValue(key, value string) error {
	return m.Called(key, value).Error(0)
}

func (m *mockSettingsService) SettableKeys() []string {
	return m.Called().Get(0).([]string)
}

func (m *mockSettingsService) Validate() error {
	return m.Called().Error(0)
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return m.Called().Get(0).(domain.AppSettings)
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return m.Called().Error(0)
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return m.Called().Error(0)
}
