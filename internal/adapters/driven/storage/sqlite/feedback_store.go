package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// feedbackStore implements driven.FeedbackStore.
type feedbackStore struct {
	store *Store
}

var _ driven.FeedbackStore = (*feedbackStore)(nil)

// Save stores a feedback entry.
func (s *feedbackStore) Save(ctx context.Context, fb *domain.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO feedback (id, module_id, challenge, rating, implementation_status,
			comments, conversation_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, fb.ID, fb.ModuleID, fb.Challenge, fb.Rating, string(fb.ImplementationStatus),
		nullString(fb.Comments), nullString(fb.ConversationID), fb.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving feedback: %w", err)
	}
	return nil
}

// List returns feedback entries, newest first.
func (s *feedbackStore) List(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, module_id, challenge, rating, implementation_status,
			comments, conversation_id, created_at
		FROM feedback
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	defer rows.Close()

	var entries []domain.Feedback //nolint:prealloc // size unknown from query
	for rows.Next() {
		var fb domain.Feedback
		var status string
		var comments, conversationID sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&fb.ID, &fb.ModuleID, &fb.Challenge, &fb.Rating, &status,
			&comments, &conversationID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning feedback: %w", err)
		}
		fb.ImplementationStatus = domain.ImplementationStatus(status)
		fb.Comments = comments.String
		fb.ConversationID = conversationID.String
		if createdAt.Valid {
			fb.CreatedAt = createdAt.Time
		}
		entries = append(entries, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating feedback: %w", err)
	}
	return entries, nil
}

// Stats aggregates all stored feedback.
func (s *feedbackStore) Stats(ctx context.Context) (domain.FeedbackStats, error) {
	stats := domain.FeedbackStats{
		ImplementationBreakdown: map[domain.ImplementationStatus]int{},
	}

	var avg sql.NullFloat64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*), AVG(rating) FROM feedback",
	).Scan(&stats.TotalCount, &avg)
	if err != nil {
		return stats, fmt.Errorf("aggregating feedback: %w", err)
	}
	stats.AverageRating = avg.Float64

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT implementation_status, COUNT(*) FROM feedback GROUP BY implementation_status
	`)
	if err != nil {
		return stats, fmt.Errorf("querying breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("scanning breakdown: %w", err)
		}
		stats.ImplementationBreakdown[domain.ImplementationStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating breakdown: %w", err)
	}
	return stats, nil
}
