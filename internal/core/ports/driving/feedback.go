package driving

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// FeedbackService records and aggregates module feedback.
type FeedbackService interface {
	// Submit validates and stores feedback.
	Submit(ctx context.Context, fb domain.Feedback) (*domain.Feedback, error)

	// List returns all feedback, newest first.
	List(ctx context.Context) ([]domain.Feedback, error)

	// Stats aggregates all feedback.
	Stats(ctx context.Context) (domain.FeedbackStats, error)
}
