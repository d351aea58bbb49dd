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

// LogTaskCommand contains the data needed to record a task interval.
type LogTaskCommand struct {
	UserID    uuid.UUID
	Title     string
	Type      domain.TaskType
	StartAt   *time.Time
	EndAt     *time.Time
	Completed bool
}

// LogTaskResult contains the result of recording a task.
type LogTaskResult struct {
	TaskID        uuid.UUID
	CurrentStreak int
	LongestStreak int
}

// LogTaskHandler handles the LogTaskCommand.
type LogTaskHandler struct {
	activityRepo domain.ActivityRepository
	streakRepo   domain.StreakRepository
	uow          sharedApplication.UnitOfWork
	publisher    eventbus.Publisher
	logger       *slog.Logger
	defaultGoal  float64
}

// NewLogTaskHandler creates a new LogTaskHandler.
func NewLogTaskHandler(
	activityRepo domain.ActivityRepository,
	streakRepo domain.StreakRepository,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	defaultGoal float64,
) *LogTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTaskHandler{
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
		uow:          uow,
		publisher:    publisher,
		logger:       logger,
		defaultGoal:  defaultGoal,
	}
}

// Handle executes the LogTaskCommand. Work tasks union their bucket day
// into the user's streak within the same transaction.
func (h *LogTaskHandler) Handle(ctx context.Context, cmd LogTaskCommand) (*LogTaskResult, error) {
	task, err := domain.NewTask(cmd.UserID, cmd.Title, cmd.Type, cmd.StartAt, cmd.EndAt, cmd.Completed)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &LogTaskResult{TaskID: task.ID}
	events := []sharedDomain.DomainEvent{domain.NewTaskLogged(task)}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.activityRepo.SaveTask(txCtx, task); err != nil {
			return err
		}

		bucketAt, ok := task.BucketTime()
		if !task.IsWork() || !ok {
			return nil
		}

		streak, err := h.streakRepo.FindByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if streak == nil {
			streak, err = domain.NewUserStreak(cmd.UserID, h.defaultGoal)
			if err != nil {
				return err
			}
		}

		streak.Apply(now, []domain.DayKey{domain.DayKeyOf(bucketAt)})
		if err := h.streakRepo.Save(txCtx, streak); err != nil {
			return err
		}

		events = append(events, streak.DomainEvents()...)
		streak.ClearDomainEvents()

		result.CurrentStreak = streak.Current()
		result.LongestStreak = streak.Longest()
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventbus.PublishDomainEvents(ctx, h.publisher, h.logger, events)

	return result, nil
}
