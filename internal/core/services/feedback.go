package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService records teacher ratings of generated modules.
type FeedbackService struct {
	store driven.FeedbackStore
	now   func() time.Time
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(store driven.FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store, now: time.Now}
}

// Submit validates and stores feedback. An empty implementation status
// defaults to not_tried.
func (s *FeedbackService) Submit(ctx context.Context, fb domain.Feedback) (*domain.Feedback, error) {
	fb.ModuleID = strings.TrimSpace(fb.ModuleID)
	if fb.ModuleID == "" {
		return nil, fmt.Errorf("%w: module id is required", domain.ErrInvalidInput)
	}
	if fb.Rating < domain.MinRating || fb.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d, got %d",
			domain.ErrInvalidInput, domain.MinRating, domain.MaxRating, fb.Rating)
	}
	if fb.ImplementationStatus == "" {
		fb.ImplementationStatus = domain.StatusNotTried
	}
	if !fb.ImplementationStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown implementation status %q", domain.ErrInvalidInput, fb.ImplementationStatus)
	}

	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	fb.CreatedAt = s.now().UTC()

	if err := s.store.Save(ctx, &fb); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return &fb, nil
}

// List returns all feedback, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.store.List(ctx)
}

// Stats aggregates all feedback.
func (s *FeedbackService) Stats(ctx context.Context) (domain.FeedbackStats, error) {
	return s.store.Stats(ctx)
}
