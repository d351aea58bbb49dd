package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DashboardCache stores assembled dashboards for fast reads between
// refresh cycles.
type DashboardCache interface {
	// Set stores a user's dashboard with the given TTL.
	Set(ctx context.Context, userID uuid.UUID, dashboard *Dashboard, ttl time.Duration) error

	// Get retrieves a user's cached dashboard, or nil when absent.
	Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}
