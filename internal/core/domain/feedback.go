package domain

import "time"

// ImplementationStatus records whether a teacher tried a module in class.
type ImplementationStatus string

// Available implementation statuses.
const (
	StatusNotTried     ImplementationStatus = "not_tried"
	StatusTried        ImplementationStatus = "tried"
	StatusSuccessful   ImplementationStatus = "successful"
	StatusUnsuccessful ImplementationStatus = "unsuccessful"
)

// IsValid returns true if the status is recognised.
func (s ImplementationStatus) IsValid() bool {
	switch s {
	case StatusNotTried, StatusTried, StatusSuccessful, StatusUnsuccessful:
		return true
	default:
		return false
	}
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is a teacher's rating of a generated module.
type Feedback struct {
	ID                   string               `json:"id"`
	ModuleID             string               `json:"module_id"`
	Challenge            string               `json:"challenge"`
	Rating               int                  `json:"rating"`
	ImplementationStatus ImplementationStatus `json:"implementation_status"`
	Comments             string               `json:"comments,omitempty"`
	ConversationID       string               `json:"conversation_id,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
}

// FeedbackStats aggregates all submitted feedback.
type FeedbackStats struct {
	// TotalCount is the number of feedback entries.
	TotalCount int `json:"total_count"`

	// AverageRating is the mean rating, 0 when there is no feedback.
	AverageRating float64 `json:"average_rating"`

	// ImplementationBreakdown counts entries per implementation status.
	ImplementationBreakdown map[ImplementationStatus]int `json:"implementation_breakdown"`
}
