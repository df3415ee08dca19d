package driving

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// GenerateModuleRequest describes a module generation request.
// Zero values fall back to configured defaults.
type GenerateModuleRequest struct {
	// Challenge is the teacher's classroom problem. Required.
	Challenge string

	// ConversationID continues an existing conversation. Empty starts a new one.
	ConversationID string

	// TargetDuration is the desired module length in minutes.
	TargetDuration int

	// DifficultyLevel is the intended audience level.
	DifficultyLevel domain.DifficultyLevel

	// Language is the output language code.
	Language string
}

// GenerateModuleResult is a generated module and the conversation it was stored in.
type GenerateModuleResult struct {
	Module         *domain.Module
	ConversationID string

	// Sources are the passages the module was grounded on.
	Sources []domain.RetrievalResult
}

// ModuleService generates micro-learning modules.
type ModuleService interface {
	// Generate runs retrieval, prompt assembly, generation and parsing.
	Generate(ctx context.Context, req GenerateModuleRequest) (*GenerateModuleResult, error)
}
