// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// linesPerSource is the rendered height of one passage.
const linesPerSource = 2

// SourceList displays the manual passages a module was grounded on.
type SourceList struct {
	sources  []domain.RetrievalResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewSourceList creates a new source list component.
func NewSourceList(s *styles.Styles) *SourceList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SourceList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *SourceList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SourceList) Update(msg tea.Msg) (*SourceList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *SourceList) View() string {
	if len(l.sources) == 0 {
		return l.styles.Muted.Render("No sources")
	}

	lines := make([]string, 0, len(l.sources)*linesPerSource+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Sources (%d)", len(l.sources))), "")

	visible := (l.height - 2) / linesPerSource
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.sources) {
		end = len(l.sources)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderSource(i, &l.sources[i]))
	}

	return strings.Join(lines, "\n")
}

// renderSource formats a passage as "title #chunk  score" over a one-line preview.
func (l *SourceList) renderSource(index int, src *domain.RetrievalResult) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := src.Metadata.Title
	if title == "" {
		title = src.Metadata.Filename
	}
	label := truncate(fmt.Sprintf("%s #%d", title, src.Metadata.ChunkID), l.width-16)
	score := fmt.Sprintf("%.2f", src.Score)

	var head string
	if index == l.selected {
		head = l.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, label, score))
	} else {
		head = l.styles.Normal.Render(indicator+label+"  ") + l.styles.Muted.Render(score)
	}

	preview := strings.Join(strings.Fields(src.Text), " ")
	return head + "\n" + l.styles.Muted.Render("    "+truncate(preview, l.width-6))
}

func truncate(s string, n int) string {
	if n < 10 {
		n = 10
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetSources replaces the list contents.
func (l *SourceList) SetSources(sources []domain.RetrievalResult) {
	l.sources = sources
	l.selected = 0
}

// Sources returns the current passages.
func (l *SourceList) Sources() []domain.RetrievalResult {
	return l.sources
}

// Selected returns the index of the selected passage.
func (l *SourceList) Selected() int {
	return l.selected
}

// SelectedSource returns the selected passage, or nil if the list is empty.
func (l *SourceList) SelectedSource() *domain.RetrievalResult {
	if l.selected < 0 || l.selected >= len(l.sources) {
		return nil
	}
	return &l.sources[l.selected]
}

// MoveUp moves selection up.
func (l *SourceList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SourceList) MoveDown() {
	if l.selected < len(l.sources)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SourceList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of passages.
func (l *SourceList) Count() int {
	return len(l.sources)
}
