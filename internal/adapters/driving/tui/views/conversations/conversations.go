// Package conversations provides the conversation history view for the TUI.
package conversations

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

const timeLayout = "02 Jan 15:04"

// View lists past conversations and previews their messages.
type View struct {
	styles              *styles.Styles
	conversationService driving.ConversationService
	ctx                 context.Context

	conversations []domain.Conversation
	preview       []domain.Message
	previewID     string
	selected      int
	width         int
	height        int
	ready         bool
	err           error
	loading       bool
}

// NewView creates a new conversations view.
func NewView(s *styles.Styles, conversationService driving.ConversationService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:              s,
		conversationService: conversationService,
		ctx:                 context.Background(),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the conversation list.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.preview = nil
	v.previewID = ""
	return v.loadConversations()
}

func (v *View) loadConversations() tea.Cmd {
	return func() tea.Msg {
		if v.conversationService == nil {
			return messages.ConversationsLoaded{Err: fmt.Errorf("conversation service not available")}
		}
		convs, err := v.conversationService.List(v.ctx)
		return messages.ConversationsLoaded{Conversations: convs, Err: err}
	}
}

func (v *View) loadMessages(id string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := v.conversationService.Messages(v.ctx, id)
		return messages.MessagesLoaded{ConversationID: id, Messages: msgs, Err: err}
	}
}

func (v *View) deleteConversation(id string) tea.Cmd {
	return func() tea.Msg {
		return messages.ConversationDeleted{ID: id, Err: v.conversationService.Delete(v.ctx, id)}
	}
}

// Update handles messages for the conversations view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ConversationsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.conversations = msg.Conversations
		if v.selected >= len(v.conversations) {
			v.selected = max(len(v.conversations)-1, 0)
		}
		return v, nil

	case messages.MessagesLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.previewID = msg.ConversationID
		v.preview = msg.Messages
		return v, nil

	case messages.ConversationDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if v.previewID == msg.ID {
			v.preview = nil
			v.previewID = ""
		}
		return v, v.loadConversations()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.previewID != "" {
			v.preview = nil
			v.previewID = ""
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	current := v.Selected()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.conversations)-1 {
			v.selected++
		}
	case "enter":
		if current != nil {
			conv := *current
			return v, func() tea.Msg {
				return messages.ConversationSelected{Conversation: conv}
			}
		}
	case "v", "tab":
		if current != nil && v.conversationService != nil {
			return v, v.loadMessages(current.ID)
		}
	case "d", "delete":
		if current != nil && v.conversationService != nil {
			return v, v.deleteConversation(current.ID)
		}
	case "r":
		v.loading = true
		return v, v.loadConversations()
	}

	return v, nil
}

// View renders the conversations view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Conversations"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading conversations..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case len(v.conversations) == 0:
		b.WriteString(v.styles.Muted.Render("No conversations yet. Generate a module to start one."))
	case v.previewID != "":
		b.WriteString(v.renderPreview())
	default:
		for i := range v.conversations {
			b.WriteString(v.renderConversation(i, &v.conversations[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderConversation(index int, conv *domain.Conversation) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	title := conv.Title
	maxTitle := v.width - len(timeLayout) - 8
	if maxTitle < 10 {
		maxTitle = 10
	}
	if r := []rune(title); len(r) > maxTitle {
		title = string(r[:maxTitle-3]) + "..."
	}
	when := conv.UpdatedAt.Local().Format(timeLayout)

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitle, title, when))
	}
	return v.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitle, title)) +
		v.styles.Muted.Render(when)
}

func (v *View) renderPreview() string {
	var b strings.Builder
	for _, conv := range v.conversations {
		if conv.ID == v.previewID {
			b.WriteString(v.styles.Subtitle.Render(conv.Title))
			b.WriteString("\n\n")
			break
		}
	}

	for _, m := range v.preview {
		b.WriteString(v.styles.Subtitle.Render(m.Role.Speaker() + ": "))
		if m.Module != nil {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%s (%d min, %d sections)",
				m.Module.Title, m.Module.TotalDuration, len(m.Module.Sections))))
		} else {
			b.WriteString(v.styles.Normal.Render(m.Content))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderHelp() string {
	if v.previewID != "" {
		return v.styles.Help.Render("[enter] continue  [esc] back to list")
	}
	return v.styles.Help.Render("[enter] continue  [v] view  [d] delete  [r] reload  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Conversations returns the loaded conversations.
func (v *View) Conversations() []domain.Conversation {
	return v.conversations
}

// Selected returns the highlighted conversation, or nil if there is none.
func (v *View) Selected() *domain.Conversation {
	if v.selected < 0 || v.selected >= len(v.conversations) {
		return nil
	}
	return &v.conversations[v.selected]
}

// SelectedIndex returns the highlighted row.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Previewing returns the id of the conversation whose messages are shown.
func (v *View) Previewing() string {
	return v.previewID
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
