package settings

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// providerPicker is the state behind the embedding and LLM provider screens.
type providerPicker struct {
	title     string
	providers []domain.AIProvider
	models    map[domain.AIProvider]string
	keyInput  textinput.Model
	save      func(svc driving.SettingsService, provider domain.AIProvider, model, apiKey string) error
}

func newEmbeddingPicker() *providerPicker {
	return &providerPicker{
		title:     "Select Embedding Provider",
		providers: domain.AllEmbeddingProviders(),
		models:    domain.DefaultEmbeddingModels(),
		keyInput:  newAPIKeyInput(),
		save: func(svc driving.SettingsService, provider domain.AIProvider, model, apiKey string) error {
			return svc.SetEmbeddingProvider(provider, model, apiKey)
		},
	}
}

func newLLMPicker() *providerPicker {
	return &providerPicker{
		title:     "Select LLM Provider",
		providers: domain.AllLLMProviders(),
		models:    domain.DefaultLLMModels(),
		keyInput:  newAPIKeyInput(),
		save: func(svc driving.SettingsService, provider domain.AIProvider, model, apiKey string) error {
			return svc.SetLLMProvider(provider, model, apiKey)
		},
	}
}

func newAPIKeyInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Enter API key"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 256
	return ti
}

func (p *providerPicker) at(i int) (domain.AIProvider, bool) {
	if i < 0 || i >= len(p.providers) {
		return "", false
	}
	return p.providers[i], true
}

// indexOf returns the position of provider, or 0 when it is not listed.
func (p *providerPicker) indexOf(provider domain.AIProvider) int {
	for i, candidate := range p.providers {
		if candidate == provider {
			return i
		}
	}
	return 0
}

func (p *providerPicker) reset() {
	p.keyInput.SetValue("")
	p.keyInput.Blur()
}
