package commands

import (
	"context"
	"log/slog"
	"time"

	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// LogBreakCommand contains the data needed to record a break.
type LogBreakCommand struct {
	UserID     uuid.UUID
	OccurredAt time.Time
}

// LogBreakResult contains the result of recording a break.
type LogBreakResult struct {
	BreakID uuid.UUID
}

// LogBreakHandler handles the LogBreakCommand.
type LogBreakHandler struct {
	activityRepo domain.ActivityRepository
	uow          sharedApplication.UnitOfWork
	publisher    eventbus.Publisher
	logger       *slog.Logger
}

// NewLogBreakHandler creates a new LogBreakHandler.
func NewLogBreakHandler(
	activityRepo domain.ActivityRepository,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *LogBreakHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogBreakHandler{
		activityRepo: activityRepo,
		uow:          uow,
		publisher:    publisher,
		logger:       logger,
	}
}

// Handle executes the LogBreakCommand. Breaks count toward daily buckets
// but never toward streaks.
func (h *LogBreakHandler) Handle(ctx context.Context, cmd LogBreakCommand) (*LogBreakResult, error) {
	occurredAt := cmd.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	br, err := domain.NewBreak(cmd.UserID, occurredAt)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.activityRepo.SaveBreak(txCtx, br)
	})
	if err != nil {
		return nil, err
	}

	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger,
		[]sharedDomain.DomainEvent{domain.NewBreakLogged(br)})

	return &LogBreakResult{BreakID: br.ID}, nil
}
