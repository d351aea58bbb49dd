package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/application/services"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisDashboardCache implements services.DashboardCache using Redis.
// Dashboards are stored as JSON under a namespaced key per user.
type RedisDashboardCache struct {
	client *redis.Client
}

// NewRedisDashboardCache creates a new Redis dashboard cache.
func NewRedisDashboardCache(client *redis.Client) *RedisDashboardCache {
	return &RedisDashboardCache{client: client}
}

func dashboardKey(userID uuid.UUID) string {
	return fmt.Sprintf("cadence:dashboard:%s", userID)
}

// Set stores a user's dashboard with the given TTL.
func (c *RedisDashboardCache) Set(ctx context.Context, userID uuid.UUID, dashboard *services.Dashboard, ttl time.Duration) error {
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	return c.client.Set(ctx, dashboardKey(userID), payload, ttl).Err()
}

// Get retrieves a user's cached dashboard, or nil when absent.
func (c *RedisDashboardCache) Get(ctx context.Context, userID uuid.UUID) (*services.Dashboard, error) {
	payload, err := c.client.Get(ctx, dashboardKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dashboard services.Dashboard
	if err := json.Unmarshal(payload, &dashboard); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard: %w", err)
	}
	return &dashboard, nil
}

// Invalidate removes a user's cached dashboard.
func (c *RedisDashboardCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, dashboardKey(userID)).Err()
}
