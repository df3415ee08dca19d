// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService generates text from prompts.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (GPT-4o family)
//   - Anthropic (Claude)
type LLMService interface {
	// Generate produces a completion for prompt.
	// Network failures, timeouts and non-2xx responses are returned as errors.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
// Zero values leave the provider default in place.
type GenerateOptions struct {
	// System is the system prompt.
	System string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	// Nil leaves the provider default; an explicit 0 is sent as 0.
	Temperature *float64

	// TopP is the nucleus sampling threshold.
	TopP float64

	// RepeatPenalty discourages repeated tokens. Ignored by providers without it.
	RepeatPenalty float64
}

// WithTemperature returns o with an explicit temperature.
func (o GenerateOptions) WithTemperature(t float64) GenerateOptions {
	o.Temperature = &t
	return o
}
