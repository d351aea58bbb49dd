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

// LogMoodCommand contains the data needed to record a mood check-in.
// Mood and Stress are optional; present values must be within [1, 10].
type LogMoodCommand struct {
	UserID     uuid.UUID
	OccurredAt time.Time
	Mood       *float64
	Stress     *float64
}

// LogMoodResult contains the result of recording a mood check-in.
type LogMoodResult struct {
	CheckinID uuid.UUID
}

// LogMoodHandler handles the LogMoodCommand.
type LogMoodHandler struct {
	activityRepo domain.ActivityRepository
	uow          sharedApplication.UnitOfWork
	publisher    eventbus.Publisher
	logger       *slog.Logger
}

// NewLogMoodHandler creates a new LogMoodHandler.
func NewLogMoodHandler(
	activityRepo domain.ActivityRepository,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *LogMoodHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMoodHandler{
		activityRepo: activityRepo,
		uow:          uow,
		publisher:    publisher,
		logger:       logger,
	}
}

// Handle executes the LogMoodCommand.
func (h *LogMoodHandler) Handle(ctx context.Context, cmd LogMoodCommand) (*LogMoodResult, error) {
	occurredAt := cmd.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	checkin, err := domain.NewMoodCheckin(cmd.UserID, occurredAt, cmd.Mood, cmd.Stress)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		return h.activityRepo.SaveMood(txCtx, checkin)
	})
	if err != nil {
		return nil, err
	}

	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger,
		[]sharedDomain.DomainEvent{domain.NewMoodLogged(checkin)})

	return &LogMoodResult{CheckinID: checkin.ID}, nil
}
