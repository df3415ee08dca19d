package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/views/challenge"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/views/conversations"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView          *menu.View
	challengeView     *challenge.View
	conversationsView *conversations.View
	settingsView      *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:             ports,
		ctx:               context.Background(),
		styles:            s,
		menuView:          menu.NewView(s),
		challengeView:     challenge.NewView(s, km, ports.Module, ports.Feedback),
		conversationsView: conversations.NewView(s, ports.Conversation),
		settingsView:      settings.NewView(s, ports.Settings),
		currentView:       messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx == nil {
		return a
	}
	a.ctx = ctx
	a.challengeView.WithContext(ctx)
	a.conversationsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pragati - Teacher Training"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewChallenge:
			a.challengeView.Reset()
			return a, a.challengeView.Init()
		case messages.ViewConversations:
			return a, a.conversationsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.ConversationSelected:
		a.challengeView.SetConversation(msg.Conversation)
		a.currentView = messages.ViewChallenge
		return a, a.challengeView.Init()

	case messages.ModuleGenerated, messages.FeedbackSubmitted:
		// Generation can outlive navigation; results always land in the challenge view.
		a.challengeView, cmd = a.challengeView.Update(msg)
		if gen, ok := msg.(messages.ModuleGenerated); ok {
			a.err = gen.Err
		}
		return a, cmd

	case messages.ConversationsLoaded, messages.MessagesLoaded, messages.ConversationDeleted:
		a.conversationsView, cmd = a.conversationsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewChallenge {
			a.challengeView, cmd = a.challengeView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward sends msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChallenge:
		a.challengeView, cmd = a.challengeView.Update(msg)
	case messages.ViewConversations:
		a.conversationsView, cmd = a.conversationsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewChallenge:
		return a.challengeView.View()
	case messages.ViewConversations:
		return a.conversationsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  1-4         Jump to an option
  enter       Select option

Challenge:
  (type)      Describe a classroom challenge
  enter       Generate a module
  f           Ask a follow-up in the same conversation
  n           Start a new challenge
  s           Show or hide the manual passages used
  1-5         Rate the module
  ↑/↓         Scroll the module

Conversations:
  enter       Continue the conversation
  v           View its messages
  d           Delete it

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.challengeView.SetDimensions(width, height)
	a.conversationsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
