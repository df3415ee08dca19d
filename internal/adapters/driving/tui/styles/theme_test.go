package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"primary":    theme.Primary,
		"secondary":  theme.Secondary,
		"background": theme.Background,
		"foreground": theme.Foreground,
		"muted":      theme.Muted,
		"success":    theme.Success,
		"warning":    theme.Warning,
		"error":      theme.Error,
		"border":     theme.Border,
		"activity":   theme.Activity,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{
		theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error, theme.Activity,
	} {
		assert.False(t, seen[c], "duplicate accent: %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestNewStyles_KeepsTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#FFFFFF")

	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
}

func TestStyles_CanRenderText(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"title":    s.Title,
		"subtitle": s.Subtitle,
		"selected": s.Selected,
		"section":  s.Section,
		"activity": s.Activity,
		"help":     s.Help,
	} {
		assert.Contains(t, style.Render("Think-pair-share"), "Think-pair-share", name)
	}
}

func TestStyles_Minutes(t *testing.T) {
	assert.Contains(t, DefaultStyles().Minutes(5), "(5 min)")
}
