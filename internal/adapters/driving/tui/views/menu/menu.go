// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "New Challenge", Hint: "Describe a classroom problem, get a timed module", View: messages.ViewChallenge},
			{Label: "Conversations", Hint: "Revisit and continue earlier modules", View: messages.ViewConversations},
			{Label: "Settings", Hint: "AI providers, vector index and defaults", View: messages.ViewSettings},
			{Label: "Help", Hint: "Key bindings", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit

		case "1", "2", "3", "4":
			v.selected = int(msg.String()[0]-'1')
			item := v.items[v.selected]
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Pragati"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Micro-learning modules for teacher training"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i != v.selected {
			b.WriteString("  " + v.styles.Normal.Render(item.Label) + "\n")
			continue
		}
		b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
		if item.Hint != "" {
			b.WriteString("  " + v.styles.Muted.Render(item.Hint))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [1-4] Jump  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
