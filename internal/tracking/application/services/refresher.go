package services

import (
	"context"
	"log/slog"
	"time"

	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// RefresherConfig holds configuration for the dashboard refresher.
type RefresherConfig struct {
	// Interval between refresh cycles.
	Interval time.Duration
	// BatchSize caps how many users are refreshed per cycle.
	BatchSize int
	// CacheTTL is the lifetime of cached dashboards.
	CacheTTL time.Duration
}

// DefaultRefresherConfig returns sensible defaults.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Interval:  15 * time.Minute,
		BatchSize: 100,
		CacheTTL:  30 * time.Minute,
	}
}

// Refresher periodically rebuilds dashboards for all active users and
// writes them to the cache. Cache writes go through a circuit breaker so
// a failing cache backend does not stall the refresh loop.
type Refresher struct {
	builder      *DashboardBuilder
	activityRepo domain.ActivityRepository
	streakRepo   domain.StreakRepository
	uow          sharedApplication.UnitOfWork
	cache        DashboardCache
	publisher    eventbus.Publisher
	breaker      *gobreaker.CircuitBreaker[any]
	config       RefresherConfig
	logger       *slog.Logger
}

// NewRefresher creates a new Refresher.
func NewRefresher(
	builder *DashboardBuilder,
	activityRepo domain.ActivityRepository,
	streakRepo domain.StreakRepository,
	uow sharedApplication.UnitOfWork,
	cache DashboardCache,
	publisher eventbus.Publisher,
	config RefresherConfig,
	logger *slog.Logger,
) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:    "dashboard-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Refresher{
		builder:      builder,
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
		uow:          uow,
		cache:        cache,
		publisher:    publisher,
		breaker:      gobreaker.NewCircuitBreaker[any](settings),
		config:       config,
		logger:       logger,
	}
}

// Run executes refresh cycles until the context is cancelled. The first
// cycle runs immediately.
func (r *Refresher) Run(ctx context.Context) {
	r.logger.Info("dashboard refresher started", "interval", r.config.Interval)

	r.RefreshAll(ctx)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("dashboard refresher stopped")
			return
		case <-ticker.C:
			r.RefreshAll(ctx)
		}
	}
}

// RefreshAll rebuilds dashboards for up to BatchSize users with recorded
// activity. Per-user failures are logged and skipped.
func (r *Refresher) RefreshAll(ctx context.Context) {
	userIDs, err := r.activityRepo.ListUserIDs(ctx)
	if err != nil {
		r.logger.Error("failed to list users for refresh", "error", err)
		return
	}
	if r.config.BatchSize > 0 && len(userIDs) > r.config.BatchSize {
		userIDs = userIDs[:r.config.BatchSize]
	}

	refreshed := 0
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return
		}
		if err := r.RefreshUser(ctx, userID); err != nil {
			r.logger.Error("failed to refresh dashboard", "user_id", userID, "error", err)
			continue
		}
		refreshed++
	}

	r.logger.Info("refresh cycle complete", "users", len(userIDs), "refreshed", refreshed)
}

// RefreshUser rebuilds one user's dashboard, persists streak changes, and
// writes the result to the cache.
func (r *Refresher) RefreshUser(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()

	var dashboard *Dashboard
	var events []sharedDomain.DomainEvent

	err := sharedApplication.WithUnitOfWork(ctx, r.uow, func(txCtx context.Context) error {
		var err error
		var streak *domain.UserStreak

		dashboard, streak, err = r.builder.Build(txCtx, userID, now)
		if err != nil {
			return err
		}

		if len(streak.DomainEvents()) > 0 {
			if err := r.streakRepo.Save(txCtx, streak); err != nil {
				return err
			}
			events = streak.DomainEvents()
			streak.ClearDomainEvents()
		}
		return nil
	})
	if err != nil {
		return err
	}

	eventbus.PublishDomainEvents(ctx, r.publisher, r.logger, events)

	// Cache write failures must not fail the refresh.
	if r.cache != nil {
		_, err = r.breaker.Execute(func() (any, error) {
			return nil, r.cache.Set(ctx, userID, dashboard, r.config.CacheTTL)
		})
		if err != nil {
			r.logger.Warn("failed to cache dashboard", "user_id", userID, "error", err)
		}
	}

	return nil
}
