package driving

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// HealthService probes external dependencies.
type HealthService interface {
	// Check pings every configured dependency.
	Check(ctx context.Context) domain.HealthReport
}
