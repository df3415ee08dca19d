package challenge

import "errors"

// Error definitions for the challenge view.
var (
	// ErrNoModuleService indicates that no module service was provided.
	ErrNoModuleService = errors.New("module service is required")

	// ErrNoFeedbackService indicates that ratings cannot be stored.
	ErrNoFeedbackService = errors.New("feedback service not available")
)
