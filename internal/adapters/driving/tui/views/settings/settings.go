// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionEmbedding
	SectionLLM
	SectionIndex
	SectionDifficulty
)

// overviewItems is the number of editable rows on the overview.
const overviewItems = 4

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error

	// Navigation state
	section      Section
	selected     int // selection within current section
	focusedField int // for text input focus

	embedding *providerPicker
	llm       *providerPicker

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		embedding:       newEmbeddingPicker(),
		llm:             newLLMPicker(),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
			// Reload settings after save
			cmd := v.loadSettings()
			return v, cmd
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
//
//nolint:exhaustive // explicit default handling for escape provides better UX
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Global escape to go back
	if msg.String() == "esc" {
		switch v.section {
		case SectionOverview:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		default:
			v.section = SectionOverview
			v.selected = 0
			return v, nil
		}
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionEmbedding:
		return v.handleProviderKeys(v.embedding, msg)
	case SectionLLM:
		return v.handleProviderKeys(v.llm, msg)
	case SectionIndex:
		backends := domain.AllIndexBackends()
		return v.handleChoiceKeys(msg, len(backends), func(i int) tea.Cmd {
			return v.setValue("index.backend", string(backends[i]))
		})
	case SectionDifficulty:
		levels := domain.AllDifficultyLevels()
		return v.handleChoiceKeys(msg, len(levels), func(i int) tea.Cmd {
			return v.setValue("module.difficulty", string(levels[i]))
		})
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewItems-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		switch v.selected {
		case 0:
			v.section = SectionEmbedding
			v.selected = v.embedding.indexOf(v.settings.Embedding.Provider)
		case 1:
			v.section = SectionLLM
			v.selected = v.llm.indexOf(v.settings.LLM.Provider)
		case 2:
			v.section = SectionIndex
			v.selected = v.getIndexBackendIndex()
		case 3:
			v.section = SectionDifficulty
			v.selected = v.getDifficultyIndex()
		}
	}
	return v, nil
}

// handleChoiceKeys drives a single-choice list of n options.
func (v *View) handleChoiceKeys(msg tea.KeyMsg, n int, choose func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < n-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < n {
			return v, choose(v.selected)
		}
	}
	return v, nil
}

// handleProviderKeys drives a provider picker and its API key field.
func (v *View) handleProviderKeys(p *providerPicker, msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusedField == 1 {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.focusedField = 0
			p.keyInput.Blur()
			return v, nil
		case keyEnter:
			if provider, ok := p.at(v.selected); ok {
				return v, v.saveProvider(p, provider, p.keyInput.Value())
			}
			return v, nil
		default:
			var cmd tea.Cmd
			p.keyInput, cmd = p.keyInput.Update(msg)
			return v, cmd
		}
	}

	provider, ok := p.at(v.selected)
	switch msg.String() {
	case keyTab:
		if ok && provider.RequiresAPIKey() {
			v.focusedField = 1
			return v, p.keyInput.Focus()
		}
	case keyEnter:
		if !ok {
			return v, nil
		}
		if provider.RequiresAPIKey() {
			v.focusedField = 1
			return v, p.keyInput.Focus()
		}
		return v, v.saveProvider(p, provider, "")
	default:
		return v.handleChoiceKeys(msg, len(p.providers), func(int) tea.Cmd { return nil })
	}
	return v, nil
}

// Commands to update settings.

func (v *View) setValue(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		err := v.settingsService.SetValue(key, value)
		if err == nil {
			v.section = SectionOverview
			v.selected = 0
		}
		return messages.SettingsSaved{Err: err}
	}
}

// saveProvider stores provider with its default model.
func (v *View) saveProvider(p *providerPicker, provider domain.AIProvider, apiKey string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		err := p.save(v.settingsService, provider, p.models[provider], apiKey)
		if err == nil {
			v.section = SectionOverview
			v.selected = 0
			v.focusedField = 0
			p.reset()
		}
		return messages.SettingsSaved{Err: err}
	}
}

// Helper methods to get current selection indices.

func (v *View) getIndexBackendIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, b := range domain.AllIndexBackends() {
		if b == v.settings.Index.Backend {
			return i
		}
	}
	return 0
}

func (v *View) getDifficultyIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, d := range domain.AllDifficultyLevels() {
		if d == v.settings.Module.Difficulty {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	// Error display
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	// Loading state
	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionIndex:
		b.WriteString(v.renderIndexSelect())
	case SectionDifficulty:
		b.WriteString(v.renderDifficultySelect())
	case SectionEmbedding:
		b.WriteString(v.renderProviderSelect(v.embedding, v.settings.Embedding.Provider))
	case SectionLLM:
		b.WriteString(v.renderProviderSelect(v.llm, v.settings.LLM.Provider))
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	embeddingValue := "Not Set"
	if v.settings.Embedding.Provider != "" {
		embeddingValue = fmt.Sprintf("%s (%s)", v.settings.Embedding.Provider.Description(), v.settings.Embedding.Model)
	}

	llmValue := "Not Set"
	if v.settings.LLM.Provider != "" {
		llmValue = fmt.Sprintf("%s (%s)", v.settings.LLM.Provider.Description(), v.settings.LLM.Model)
	}

	items := []struct {
		label  string
		value  string
		status string
	}{
		{
			label:  "Embedding Provider",
			value:  embeddingValue,
			status: v.statusBadge(v.settings.Embedding.IsConfigured()),
		},
		{
			label:  "LLM Provider",
			value:  llmValue,
			status: v.statusBadge(v.settings.LLM.IsConfigured()),
		},
		{
			label: "Vector Index",
			value: v.settings.Index.Backend.Description(),
		},
		{
			label: "Default Difficulty",
			value: v.settings.Module.Difficulty.String(),
		},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if item.status != "" {
			line += " " + item.status
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	// Read-only defaults
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Modules: %d min, up to %d sections, %d passages",
		v.settings.Module.TargetDuration, v.settings.Module.MaxSections, v.settings.Module.TopK)))
	b.WriteString("\n")
	translation := "off (modules stay in English)"
	if v.settings.Translation.IsConfigured() {
		translation = v.settings.Translation.BaseURL
	}
	b.WriteString(v.styles.Muted.Render("Translation: " + translation))
	b.WriteString("\n")

	// Validation status
	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) statusBadge(configured bool) string {
	if configured {
		return v.styles.Success.Render("[configured]")
	}
	return v.styles.Warning.Render("[needs API key]")
}

func (v *View) renderIndexSelect() string {
	backends := domain.AllIndexBackends()
	labels := make([]string, len(backends))
	current := -1
	for i, b := range backends {
		labels[i] = b.Description()
		if v.settings != nil && b == v.settings.Index.Backend {
			current = i
		}
	}
	return v.renderChoices("Select Vector Index", labels, current)
}

func (v *View) renderDifficultySelect() string {
	levels := domain.AllDifficultyLevels()
	labels := make([]string, len(levels))
	current := -1
	for i, d := range levels {
		labels[i] = d.String()
		if v.settings != nil && d == v.settings.Module.Difficulty {
			current = i
		}
	}
	return v.renderChoices("Select Default Difficulty", labels, current)
}

// renderChoices renders a titled single-choice list, marking the current value.
func (v *View) renderChoices(title string, labels []string, current int) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	for i, label := range labels {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		marker := ""
		if i == current {
			marker = v.styles.Success.Render(" (current)")
		}
		line := fmt.Sprintf("%s%s%s", indicator, label, marker)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderProviderSelect lists the providers with their default models and,
// for providers that need one, the API key field.
func (v *View) renderProviderSelect(p *providerPicker, current domain.AIProvider) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(p.title))
	b.WriteString("\n\n")

	for i, provider := range p.providers {
		highlighted := i == v.selected && v.focusedField == 0
		indicator := "  "
		if highlighted {
			indicator = "> "
		}
		marker := ""
		if provider == current {
			marker = v.styles.Success.Render(" (current)")
		}

		line := indicator + provider.Description() + marker
		if highlighted {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
		if model, ok := p.models[provider]; ok {
			b.WriteString(v.styles.Muted.Render("    Model: " + model))
			b.WriteString("\n")
		}
	}

	if provider, ok := p.at(v.selected); ok && provider.RequiresAPIKey() {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("API Key:"))
		b.WriteString("\n")
		b.WriteString(p.keyInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionIndex, SectionDifficulty:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionEmbedding, SectionLLM:
		if v.focusedField == 1 {
			return v.styles.Help.Render("[tab] back to list  [enter] save  [esc] back")
		}
		return v.styles.Help.Render("[j/k] navigate  [tab] API key  [enter] select  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.err = nil
	v.embedding.reset()
	v.llm.reset()
}
