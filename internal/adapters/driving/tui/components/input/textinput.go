// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/styles"
)

// Prompt modes for the challenge input.
const (
	LabelChallenge = "Challenge: "
	LabelFollowUp  = "Follow-up: "

	placeholderChallenge = "Describe a classroom challenge..."
	placeholderFollowUp  = "Ask for changes or a related module..."
)

// challengeCharLimit bounds a single challenge description.
const challengeCharLimit = 1000

// ChallengeInput wraps a bubbles textinput for describing classroom challenges.
type ChallengeInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewChallengeInput creates a focused input in challenge mode.
func NewChallengeInput(s *styles.Styles) *ChallengeInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholderChallenge
	ti.Focus()
	ti.CharLimit = challengeCharLimit
	ti.Width = 50

	return &ChallengeInput{
		textinput: ti,
		styles:    s,
		label:     LabelChallenge,
		width:     50,
	}
}

// Init initialises the input.
func (c *ChallengeInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *ChallengeInput) Update(msg tea.Msg) (*ChallengeInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the input with its label.
func (c *ChallengeInput) View() string {
	label := c.styles.Title.Render(c.label)
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// FollowUpMode switches the label and placeholder for follow-up questions.
func (c *ChallengeInput) FollowUpMode(on bool) {
	if on {
		c.label = LabelFollowUp
		c.textinput.Placeholder = placeholderFollowUp
		return
	}
	c.label = LabelChallenge
	c.textinput.Placeholder = placeholderChallenge
}

// Label returns the current label.
func (c *ChallengeInput) Label() string {
	return c.label
}

// Value returns the current input value.
func (c *ChallengeInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *ChallengeInput) SetValue(value string) {
	c.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (c *ChallengeInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *ChallengeInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *ChallengeInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *ChallengeInput) SetWidth(width int) {
	c.width = width
	inputWidth := width - len(c.label) - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *ChallengeInput) Width() int {
	return c.width
}

// Reset clears the input.
func (c *ChallengeInput) Reset() {
	c.textinput.Reset()
}
