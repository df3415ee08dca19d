// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour, used for titles.
	Primary lipgloss.Color

	// Secondary is used for section headers and sources.
	Secondary lipgloss.Color

	// Background is the status bar background.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and metadata.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Activity highlights classroom activities inside a module.
	Activity lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F59E0B"), // Saffron
		Secondary:  lipgloss.Color("#10B981"), // Green
		Background: lipgloss.Color("#1C1917"), // Stone
		Foreground: lipgloss.Color("#E7E5E4"),
		Muted:      lipgloss.Color("#78716C"),
		Success:    lipgloss.Color("#84CC16"),
		Warning:    lipgloss.Color("#FACC15"),
		Error:      lipgloss.Color("#EF4444"),
		Border:     lipgloss.Color("#44403C"),
		Activity:   lipgloss.Color("#38BDF8"), // Sky
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// InputField frames the challenge input.
	InputField lipgloss.Style

	// StatusBar is the bottom bar.
	StatusBar lipgloss.Style

	// Help renders key hints.
	Help lipgloss.Style

	// Border wraps overlays.
	Border lipgloss.Style

	// Section renders a module section heading.
	Section lipgloss.Style

	// Duration renders minute counts next to section headings.
	Duration lipgloss.Style

	// Activity renders a section's classroom activity.
	Activity lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Primary),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Background).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary).
			MarginTop(1),

		Duration: lipgloss.NewStyle().Foreground(theme.Muted).Italic(true),

		Activity: lipgloss.NewStyle().Foreground(theme.Activity),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Minutes renders a duration label such as "(5 min)".
func (s *Styles) Minutes(n int) string {
	return s.Duration.Render(fmt.Sprintf("(%d min)", n))
}
