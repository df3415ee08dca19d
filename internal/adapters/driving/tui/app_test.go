package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	return app
}

func update(t *testing.T, app *App, msg tea.Msg) (*App, tea.Cmd) {
	t.Helper()
	model, cmd := app.Update(msg)
	out, ok := model.(*App)
	require.True(t, ok)
	return out, cmd
}

func TestNewApp_InvalidPorts(t *testing.T) {
	_, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingModuleService)
}

func TestNewApp_StartsOnMenu(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(newTestPorts())
	require.NoError(t, err)

	app, _ = update(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Pragati")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	_, cmd := update(t, app, messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ViewChanged(t *testing.T) {
	tests := []struct {
		view     messages.ViewType
		contains string
	}{
		{messages.ViewChallenge, "Challenge"},
		{messages.ViewConversations, "Conversations"},
		{messages.ViewSettings, "Settings"},
		{messages.ViewHelp, "Help"},
		{messages.ViewMenu, "New Challenge"},
	}

	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			app := newTestApp(t, newTestPorts())

			app, _ = update(t, app, messages.ViewChanged{View: tt.view})

			assert.Equal(t, tt.view, app.CurrentView())
			assert.Contains(t, app.View(), tt.contains)
		})
	}
}

func TestApp_MenuEnterOpensChallenge(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app, _ = update(t, app, cmd())

	assert.Equal(t, messages.ViewChallenge, app.CurrentView())
}

func TestApp_HelpEscReturnsToMenu(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app, _ = update(t, app, messages.ViewChanged{View: messages.ViewHelp})

	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_GenerateFlow(t *testing.T) {
	ports := newTestPorts()
	ports.Module = &MockModuleService{
		GenerateFunc: func(_ context.Context, req driving.GenerateModuleRequest) (*driving.GenerateModuleResult, error) {
			return &driving.GenerateModuleResult{
				ConversationID: "conv-1",
				Module: &domain.Module{
					ID:            "mod-1",
					Title:         "Quiet Corners",
					Challenge:     req.Challenge,
					Sections:      []domain.ModuleSection{{Title: "Set up", Content: "Mark a quiet corner.", DurationMinutes: 5}},
					TotalDuration: 5,
					CreatedAt:     time.Now(),
				},
			}, nil
		},
	}
	app := newTestApp(t, ports)
	app, _ = update(t, app, messages.ViewChanged{View: messages.ViewChallenge})

	for _, r := range "Noise during reading" {
		app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	app, cmd := update(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var generated tea.Msg
	for _, c := range batch {
		if m, ok := c().(messages.ModuleGenerated); ok {
			generated = m
		}
	}
	require.NotNil(t, generated)

	// A generation finishing after the teacher navigated away still lands.
	app, _ = update(t, app, messages.ViewChanged{View: messages.ViewMenu})
	app, _ = update(t, app, generated)
	app, _ = update(t, app, messages.ViewChanged{View: messages.ViewHelp})
	assert.NoError(t, app.Err())

	app, _ = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ConversationSelectedOpensChallenge(t *testing.T) {
	app := newTestApp(t, newTestPorts())

	app, _ = update(t, app, messages.ConversationSelected{
		Conversation: domain.Conversation{ID: "conv-7", Title: "Shy students"},
	})

	assert.Equal(t, messages.ViewChallenge, app.CurrentView())
	view := app.View()
	assert.Contains(t, view, "Shy students")
	assert.Contains(t, view, "Follow-up")
}

func TestApp_ConversationsLoad(t *testing.T) {
	ports := newTestPorts()
	ports.Conversation = &MockConversationService{Conversations: []domain.Conversation{
		{ID: "c1", Title: "Mixed-ability maths"},
	}}
	app := newTestApp(t, ports)

	app, cmd := update(t, app, messages.ViewChanged{View: messages.ViewConversations})
	require.NotNil(t, cmd)
	app, _ = update(t, app, cmd())

	assert.Contains(t, app.View(), "Mixed-ability maths")
}

func TestApp_ErrorOccurredIsRecorded(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	app, _ = update(t, app, messages.ViewChanged{View: messages.ViewChallenge})

	app, _ = update(t, app, messages.ErrorOccurred{Err: domain.ErrEmbeddingUnavailable})

	assert.ErrorIs(t, app.Err(), domain.ErrEmbeddingUnavailable)
	assert.Contains(t, app.View(), domain.ErrEmbeddingUnavailable.Error())
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, newTestPorts())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}
