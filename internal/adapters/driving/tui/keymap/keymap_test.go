package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_BindingsHaveKeys(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			assert.NotEmpty(t, b.Keys())
			assert.NotEmpty(t, b.Help().Desc)
		}
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key      string
		expected bool
	}{
		{"1", true},
		{"5", true},
		{"0", false},
		{"6", false},
		{"r", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.key, km.Rate))
		})
	}
}

func TestMatches_QuitAcceptsCtrlC(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("esc", km.Quit))
}

func TestModuleHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ModuleHelp()
	require.Len(t, help, 5)
	assert.Equal(t, "follow up", help[0].Help().Desc)
	assert.Equal(t, "back", help[len(help)-1].Help().Desc)
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()
	require.Len(t, help, 2)
	assert.Equal(t, "generate", help[0].Help().Desc)
}
