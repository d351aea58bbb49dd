package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// GetUserStatsQuery contains the parameters for fetching weekly stats.
type GetUserStatsQuery struct {
	UserID uuid.UUID
}

// GetUserStatsResult is the weekly stats payload.
type GetUserStatsResult struct {
	Stats           domain.UserStats `json:"stats"`
	WeeklyGoalHours float64          `json:"weekly_goal_hours"`
	CurrentStreak   int              `json:"current_streak"`
	LongestStreak   int              `json:"longest_streak"`
}

// GetUserStatsHandler handles the GetUserStatsQuery. It is read-only: the
// streak document is consulted for the goal and current numbers but never
// written.
type GetUserStatsHandler struct {
	activityRepo domain.ActivityRepository
	streakRepo   domain.StreakRepository
	defaultGoal  float64
}

// NewGetUserStatsHandler creates a new GetUserStatsHandler.
func NewGetUserStatsHandler(activityRepo domain.ActivityRepository, streakRepo domain.StreakRepository, defaultGoal float64) *GetUserStatsHandler {
	return &GetUserStatsHandler{
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
		defaultGoal:  defaultGoal,
	}
}

// Handle executes the GetUserStatsQuery.
func (h *GetUserStatsHandler) Handle(ctx context.Context, query GetUserStatsQuery) (*GetUserStatsResult, error) {
	now := time.Now()
	from := domain.WeekStart(now)
	to := from.AddDate(0, 0, domain.WindowDays)

	tasks, err := h.activityRepo.TasksInRange(ctx, query.UserID, from, to)
	if err != nil {
		return nil, err
	}

	result := &GetUserStatsResult{WeeklyGoalHours: h.defaultGoal}

	streak, err := h.streakRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if streak != nil {
		result.WeeklyGoalHours = streak.WeeklyGoalHours()
		result.CurrentStreak = streak.Current()
		result.LongestStreak = streak.Longest()
	}

	result.Stats = domain.ComputeUserStats(now, tasks, result.WeeklyGoalHours)

	return result, nil
}
