package queries

import (
	"context"
	"log/slog"
	"time"

	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/tracking/application/services"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// GetDashboardQuery contains the parameters for fetching a dashboard.
type GetDashboardQuery struct {
	UserID uuid.UUID
	// Fresh bypasses the cache and forces recomputation from raw records.
	Fresh bool
}

// GetDashboardHandler handles the GetDashboardQuery. Reads recompute the
// streak from observed activity and persist the result, so dashboards
// self-heal after missed command-side updates. Concurrent readers race
// last-writer-wins; the union-based update converges on the next read.
type GetDashboardHandler struct {
	builder    *services.DashboardBuilder
	streakRepo domain.StreakRepository
	uow        sharedApplication.UnitOfWork
	cache      services.DashboardCache
	publisher  eventbus.Publisher
	logger     *slog.Logger
	cacheTTL   time.Duration
}

// NewGetDashboardHandler creates a new GetDashboardHandler.
func NewGetDashboardHandler(
	builder *services.DashboardBuilder,
	streakRepo domain.StreakRepository,
	uow sharedApplication.UnitOfWork,
	cache services.DashboardCache,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	cacheTTL time.Duration,
) *GetDashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetDashboardHandler{
		builder:    builder,
		streakRepo: streakRepo,
		uow:        uow,
		cache:      cache,
		publisher:  publisher,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// Handle executes the GetDashboardQuery.
func (h *GetDashboardHandler) Handle(ctx context.Context, query GetDashboardQuery) (*services.Dashboard, error) {
	if h.cache != nil && !query.Fresh {
		cached, err := h.cache.Get(ctx, query.UserID)
		if err != nil {
			h.logger.Warn("dashboard cache read failed", "user_id", query.UserID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	now := time.Now()

	var dashboard *services.Dashboard
	var events []sharedDomain.DomainEvent

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		var streak *domain.UserStreak

		dashboard, streak, err = h.builder.Build(txCtx, query.UserID, now)
		if err != nil {
			return err
		}

		if len(streak.DomainEvents()) > 0 {
			if err := h.streakRepo.Save(txCtx, streak); err != nil {
				return err
			}
			events = streak.DomainEvents()
			streak.ClearDomainEvents()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, events)

	if h.cache != nil {
		if err := h.cache.Set(ctx, query.UserID, dashboard, h.cacheTTL); err != nil {
			h.logger.Warn("dashboard cache write failed", "user_id", query.UserID, "error", err)
		}
	}

	return dashboard, nil
}
