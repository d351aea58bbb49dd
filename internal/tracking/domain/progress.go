package domain

import "time"

// TaskStatus is the temporal state of a timed task relative to now.
type TaskStatus string

const (
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusActive    TaskStatus = "active"
	TaskStatusFuture    TaskStatus = "future"
)

// Progress describes how far through its [start, end) interval a task is.
type Progress struct {
	Status    TaskStatus
	Elapsed   time.Duration
	Remaining time.Duration
	Percent   float64
}

// ComputeProgress derives progress for a task interval at the given
// instant. A zero-duration interval is treated as already complete so
// percent never divides by zero.
func ComputeProgress(now, start, end time.Time) Progress {
	total := end.Sub(start)

	if !end.After(now) {
		elapsed := total
		if elapsed < 0 {
			elapsed = 0
		}
		return Progress{
			Status:  TaskStatusCompleted,
			Elapsed: elapsed,
			Percent: 100,
		}
	}

	if !start.After(now) {
		elapsed := now.Sub(start)
		remaining := end.Sub(now)
		percent := 100.0
		if total > 0 {
			percent = float64(elapsed) / float64(total) * 100
			if percent > 100 {
				percent = 100
			}
		}
		return Progress{
			Status:    TaskStatusActive,
			Elapsed:   elapsed,
			Remaining: remaining,
			Percent:   percent,
		}
	}

	return Progress{
		Status:    TaskStatusFuture,
		Remaining: end.Sub(now),
		Percent:   0,
	}
}
