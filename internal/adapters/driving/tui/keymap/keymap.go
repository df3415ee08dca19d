// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Generate submits the challenge input.
	Generate key.Binding

	// NewChallenge clears the input and starts a new conversation.
	NewChallenge key.Binding

	// FollowUp asks a follow-up question in the current conversation.
	FollowUp key.Binding

	// Sources toggles the retrieved passages panel.
	Sources key.Binding

	// Rate submits a 1-5 rating for the displayed module.
	Rate key.Binding

	// Delete removes the selected item.
	Delete key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Generate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		NewChallenge: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new challenge"),
		),
		FollowUp: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow up"),
		),
		Sources: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sources"),
		),
		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "rate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Back}
}

// ModuleHelp returns keybindings shown while a module is displayed.
func (k *KeyMap) ModuleHelp() []key.Binding {
	return []key.Binding{k.FollowUp, k.NewChallenge, k.Sources, k.Rate, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Generate, k.FollowUp, k.NewChallenge},
		{k.Sources, k.Rate, k.Delete},
		{k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
