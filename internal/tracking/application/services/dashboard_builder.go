package services

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// Dashboard is the assembled weekly view for one user: day-bucketed
// activity counts, streak state, and the hour/progress summary.
type Dashboard struct {
	UserID      uuid.UUID `json:"user_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Days            []domain.DayKey `json:"days"`
	Labels          []string        `json:"labels"`
	TasksPerDay     []int           `json:"tasks_per_day"`
	BreaksPerDay    []int           `json:"breaks_per_day"`
	MoodsPerDay     []int           `json:"moods_per_day"`
	MoodAvgPerDay   []*float64      `json:"mood_avg_per_day"`
	StressAvgPerDay []*float64      `json:"stress_avg_per_day"`

	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastActiveDay string `json:"last_active_day,omitempty"`

	Stats domain.UserStats `json:"stats"`
}

// DashboardBuilder assembles dashboards from raw activity records. It is
// shared by the dashboard query and the batch refresher.
type DashboardBuilder struct {
	activityRepo domain.ActivityRepository
	streakRepo   domain.StreakRepository
	defaultGoal  float64
}

// NewDashboardBuilder creates a new DashboardBuilder.
func NewDashboardBuilder(activityRepo domain.ActivityRepository, streakRepo domain.StreakRepository, defaultGoal float64) *DashboardBuilder {
	return &DashboardBuilder{
		activityRepo: activityRepo,
		streakRepo:   streakRepo,
		defaultGoal:  defaultGoal,
	}
}

// Build fetches the trailing week of records, computes the weekly buckets
// and stats, and re-applies the observed active days to the user's streak
// document. The returned streak carries pending events when its derived
// state changed; the caller decides whether and where to persist it.
func (b *DashboardBuilder) Build(ctx context.Context, userID uuid.UUID, now time.Time) (*Dashboard, *domain.UserStreak, error) {
	from := domain.WeekStart(now)
	to := from.AddDate(0, 0, domain.WindowDays)

	tasks, err := b.activityRepo.TasksInRange(ctx, userID, from, to)
	if err != nil {
		return nil, nil, err
	}
	breaks, err := b.activityRepo.BreaksInRange(ctx, userID, from, to)
	if err != nil {
		return nil, nil, err
	}
	moods, err := b.activityRepo.MoodsInRange(ctx, userID, from, to)
	if err != nil {
		return nil, nil, err
	}

	buckets := domain.ComputeWeeklyBuckets(now, tasks, breaks, moods)

	streak, err := b.streakRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if streak == nil {
		streak, err = domain.NewUserStreak(userID, b.defaultGoal)
		if err != nil {
			return nil, nil, err
		}
	}
	streak.Apply(now, buckets.ActiveDays())

	stats := domain.ComputeUserStats(now, tasks, streak.WeeklyGoalHours())

	dashboard := &Dashboard{
		UserID:          userID,
		GeneratedAt:     now,
		Days:            buckets.Window.Keys(),
		Labels:          buckets.Labels(),
		TasksPerDay:     buckets.TasksPerDay(),
		BreaksPerDay:    buckets.BreaksPerDay(),
		MoodsPerDay:     buckets.MoodCountsPerDay(),
		MoodAvgPerDay:   buckets.MoodAvgPerDay(),
		StressAvgPerDay: buckets.StressAvgPerDay(),
		CurrentStreak:   streak.Current(),
		LongestStreak:   streak.Longest(),
		LastActiveDay:   string(streak.LastActiveDay()),
		Stats:           stats,
	}

	return dashboard, streak, nil
}
