package driven

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// FeedbackStore persists module feedback.
type FeedbackStore interface {
	// Save stores a feedback entry.
	Save(ctx context.Context, fb *domain.Feedback) error

	// List returns feedback entries, newest first.
	List(ctx context.Context) ([]domain.Feedback, error)

	// Stats aggregates all stored feedback.
	Stats(ctx context.Context) (domain.FeedbackStats, error)
}
