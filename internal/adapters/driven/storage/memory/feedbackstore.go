package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure FeedbackStore implements the interface.
var _ driven.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore is an in-memory implementation of driven.FeedbackStore.
type FeedbackStore struct {
	mu      sync.RWMutex
	entries []domain.Feedback
}

// NewFeedbackStore creates a new in-memory feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{}
}

// Save stores a feedback entry.
func (s *FeedbackStore) Save(_ context.Context, fb *domain.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *fb)
	return nil
}

// List returns feedback entries, newest first.
func (s *FeedbackStore) List(_ context.Context) ([]domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Feedback, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		result = append(result, s.entries[i])
	}
	return result, nil
}

// Stats aggregates all stored feedback.
func (s *FeedbackStore) Stats(_ context.Context) (domain.FeedbackStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.FeedbackStats{
		TotalCount:              len(s.entries),
		ImplementationBreakdown: map[domain.ImplementationStatus]int{},
	}
	if len(s.entries) == 0 {
		return stats, nil
	}
	total := 0
	for _, fb := range s.entries {
		total += fb.Rating
		stats.ImplementationBreakdown[fb.ImplementationStatus]++
	}
	stats.AverageRating = float64(total) / float64(len(s.entries))
	return stats, nil
}
