// Package challenge provides the view where teachers describe a classroom
// challenge and read the generated module.
package challenge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// chromeHeight is the number of rows used by the header, input and status bar.
const chromeHeight = 8

// View is the challenge input and module display.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.ChallengeInput
	sources   *list.SourceList
	statusbar *status.Bar
	spinner   spinner.Model
	viewport  viewport.Model

	moduleService   driving.ModuleService
	feedbackService driving.FeedbackService
	ctx             context.Context

	result            *driving.GenerateModuleResult
	conversationID    string
	conversationTitle string
	challenge         string
	rated             bool

	width       int
	height      int
	ready       bool
	err         error
	focusInput  bool
	generating  bool
	showSources bool
}

// NewView creates a new challenge view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	moduleService driving.ModuleService,
	feedbackService driving.FeedbackService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.NewChallengeInput(s),
		sources:         list.NewSourceList(s),
		statusbar:       status.NewBar(s, km),
		spinner:         sp,
		viewport:        viewport.New(80, 24-chromeHeight),
		moduleService:   moduleService,
		feedbackService: feedbackService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
		focusInput:      true,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the challenge view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.generating {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.ModuleGenerated:
		v.handleModuleGenerated(msg)
		return v, nil

	case messages.FeedbackSubmitted:
		if msg.Err != nil {
			v.statusbar.SetMessage("Rating failed: " + msg.Err.Error())
			return v, nil
		}
		v.rated = true
		v.statusbar.SetMessage(fmt.Sprintf("Rated %d/5. Thank you!", msg.Feedback.Rating))
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if v.focusInput && v.result != nil {
			// Leave the follow-up prompt and return to the module.
			v.focusInput = false
			v.input.Blur()
			v.input.SetValue("")
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.generating {
		return v, nil
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.FollowUp):
		v.focusInput = true
		v.input.FollowUpMode(true)
		v.input.SetValue("")
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.NewChallenge):
		v.Reset()
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.Sources):
		v.showSources = !v.showSources
		v.layout()
		return v, nil

	case keymap.Matches(key, v.keymap.Rate):
		rating, _ := strconv.Atoi(key)
		return v, v.rate(rating)
	}

	if v.showSources {
		v.sources, _ = v.sources.Update(msg)
		return v, nil
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// submit starts generation for the current input.
func (v *View) submit() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" {
		return nil
	}

	v.challenge = text
	v.generating = true
	v.err = nil
	v.focusInput = false
	v.input.Blur()
	v.statusbar.SetState(status.StateGenerating)
	v.statusbar.SetMessage("")

	return tea.Batch(v.spinner.Tick, v.generate(text, v.conversationID))
}

// generate calls the module service.
func (v *View) generate(challenge, conversationID string) tea.Cmd {
	return func() tea.Msg {
		if v.moduleService == nil {
			return messages.ErrorOccurred{Err: ErrNoModuleService}
		}
		result, err := v.moduleService.Generate(v.ctx, driving.GenerateModuleRequest{
			Challenge:      challenge,
			ConversationID: conversationID,
		})
		return messages.ModuleGenerated{Result: result, Err: err}
	}
}

// rate stores a rating for the displayed module.
func (v *View) rate(rating int) tea.Cmd {
	if v.result == nil || v.result.Module == nil {
		return nil
	}
	fb := domain.Feedback{
		ModuleID:       v.result.Module.ID,
		Challenge:      v.result.Module.Challenge,
		Rating:         rating,
		ConversationID: v.result.ConversationID,
	}
	return func() tea.Msg {
		if v.feedbackService == nil {
			return messages.FeedbackSubmitted{Err: ErrNoFeedbackService}
		}
		stored, err := v.feedbackService.Submit(v.ctx, fb)
		return messages.FeedbackSubmitted{Feedback: stored, Err: err}
	}
}

func (v *View) handleModuleGenerated(msg messages.ModuleGenerated) {
	v.generating = false
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.result = msg.Result
	v.rated = false
	v.focusInput = false
	v.input.Blur()
	v.conversationID = msg.Result.ConversationID
	v.sources.SetSources(msg.Result.Sources)
	v.input.SetValue("")
	v.input.FollowUpMode(true)

	v.statusbar.SetState(status.StateModule)
	v.statusbar.SetMessage("")
	v.statusbar.SetDuration(msg.Result.Module.TotalDuration)

	v.layout()
	v.viewport.SetContent(RenderModule(v.styles, msg.Result.Module))
	v.viewport.GotoTop()
}

func (v *View) setError(err error) {
	v.generating = false
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	// Let the teacher edit and resubmit.
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue(v.challenge)
}

// RenderModule formats a module as titled, timed sections.
func RenderModule(s *styles.Styles, m *domain.Module) string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(m.Title))
	b.WriteString("\n")
	language := m.Language
	if name, ok := domain.LanguageName(m.Language); ok {
		language = name
	}
	meta := fmt.Sprintf("%d min | %s | %s", m.TotalDuration, m.DifficultyLevel, language)
	b.WriteString(s.Muted.Render(meta))
	b.WriteString("\n")

	for i, sec := range m.Sections {
		b.WriteString(s.Section.Render(fmt.Sprintf("%d. %s", i+1, sec.Title)))
		b.WriteString(" ")
		b.WriteString(s.Minutes(sec.DurationMinutes))
		b.WriteString("\n")
		b.WriteString(s.Normal.Render(sec.Content))
		b.WriteString("\n")
		if sec.Activity != "" {
			b.WriteString(s.Activity.Render("Activity: " + sec.Activity))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// View renders the challenge view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)

	header := v.styles.Title.Render("Pragati")
	if v.conversationTitle != "" {
		header += v.styles.Muted.Render("  " + v.conversationTitle)
	}
	sections = append(sections, header, "")

	if v.focusInput || v.result == nil {
		sections = append(sections, v.input.View(), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	switch {
	case v.generating:
		sections = append(sections, v.spinner.View()+" "+v.styles.Muted.Render("Retrieving passages and writing your module..."))
	case v.result != nil && v.showSources:
		sections = append(sections, v.sources.View())
	case v.result != nil:
		sections = append(sections, v.viewport.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// layout sizes the viewport and source list to the space left by the chrome.
func (v *View) layout() {
	body := v.height - chromeHeight
	if body < 3 {
		body = 3
	}
	v.viewport.Width = v.width
	v.viewport.Height = body
	v.sources.SetDimensions(v.width, body)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.layout()
}

// SetConversation continues an existing conversation with a follow-up.
func (v *View) SetConversation(conv domain.Conversation) {
	v.Reset()
	v.conversationID = conv.ID
	v.conversationTitle = conv.Title
	v.input.FollowUpMode(true)
}

// Reset starts a fresh conversation.
func (v *View) Reset() {
	v.result = nil
	v.conversationID = ""
	v.conversationTitle = ""
	v.challenge = ""
	v.rated = false
	v.err = nil
	v.generating = false
	v.showSources = false
	v.focusInput = true
	v.input.FollowUpMode(false)
	v.input.SetValue("")
	v.input.Focus()
	v.sources.SetSources(nil)
	v.viewport.SetContent("")
	v.statusbar.Clear()
}

// Result returns the last generated module result.
func (v *View) Result() *driving.GenerateModuleResult {
	return v.result
}

// ConversationID returns the conversation follow-ups are appended to.
func (v *View) ConversationID() string {
	return v.conversationID
}

// Challenge returns the last submitted challenge text.
func (v *View) Challenge() string {
	return v.challenge
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Generating returns whether a generation is in flight.
func (v *View) Generating() bool {
	return v.generating
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// ShowingSources returns whether the sources panel replaces the module.
func (v *View) ShowingSources() bool {
	return v.showSources
}

// Rated returns whether the displayed module has been rated.
func (v *View) Rated() bool {
	return v.rated
}

// SetQuery sets the input text.
func (v *View) SetQuery(text string) {
	v.input.SetValue(text)
}
