package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// WeekStart returns local midnight of the first day of the trailing
// window (today minus six days), so hour totals describe the same range
// as the weekly buckets.
func WeekStart(now time.Time) time.Time {
	start, err := NewWindow(now).Start().Time()
	if err != nil {
		return now
	}
	return start
}

// WeeklyHours sums hours worked across work-type tasks intersecting
// [weekStart, now]. Portions before the week are clipped; tasks still in
// progress contribute elapsed time; future tasks contribute nothing.
// The result is non-negative, rounded to two decimals.
func WeeklyHours(now time.Time, tasks []Task) float64 {
	weekStart := WeekStart(now)
	var total time.Duration

	for _, task := range tasks {
		if !task.IsWork() {
			continue
		}
		start, end, ok := task.Interval()
		if !ok {
			continue
		}
		if start.After(now) || !end.After(weekStart) {
			continue
		}

		from := start
		if from.Before(weekStart) {
			from = weekStart
		}
		until := end
		if until.After(now) {
			until = now
		}
		if portion := until.Sub(from); portion > 0 {
			total += portion
		}
	}

	return math.Round(total.Hours()*100) / 100
}

// WeeklyProgressPct converts an hour total into percent of the weekly
// goal, clamped to [0, 100]. A non-positive goal yields 0.
func WeeklyProgressPct(hours, weeklyGoalHours float64) int {
	if weeklyGoalHours <= 0 || hours <= 0 {
		return 0
	}
	pct := int(math.Round(hours / weeklyGoalHours * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// TaskInProgress describes the currently running task, if any.
type TaskInProgress struct {
	TaskID   uuid.UUID
	Title    string
	Progress Progress
}

// UserStats is the derived per-user summary for the current week.
type UserStats struct {
	HoursWorked    float64
	ProgressPct    int
	TasksCompleted int
	TotalTasks     int
	InProgress     *TaskInProgress
}

// ComputeUserStats derives the weekly summary from a user's tasks. When
// several tasks are active at once the most recently started wins.
func ComputeUserStats(now time.Time, tasks []Task, weeklyGoalHours float64) UserStats {
	stats := UserStats{
		HoursWorked: WeeklyHours(now, tasks),
		TotalTasks:  len(tasks),
	}
	stats.ProgressPct = WeeklyProgressPct(stats.HoursWorked, weeklyGoalHours)

	var activeStart time.Time
	for _, task := range tasks {
		if task.Completed {
			stats.TasksCompleted++
		}
		if !task.IsWork() {
			continue
		}
		start, end, ok := task.Interval()
		if !ok {
			continue
		}
		progress := ComputeProgress(now, start, end)
		if progress.Status != TaskStatusActive {
			continue
		}
		if stats.InProgress == nil || start.After(activeStart) {
			stats.InProgress = &TaskInProgress{
				TaskID:   task.ID,
				Title:    task.Title,
				Progress: progress,
			}
			activeStart = start
		}
	}

	return stats
}
