package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActivityRepository defines persistence for raw activity records.
type ActivityRepository interface {
	// SaveTask persists a task record.
	SaveTask(ctx context.Context, task *Task) error

	// SaveBreak persists a break record.
	SaveBreak(ctx context.Context, br *Break) error

	// SaveMood persists a mood check-in.
	SaveMood(ctx context.Context, m *MoodCheckin) error

	// TasksInRange finds a user's tasks whose bucket timestamp falls in
	// [from, to). The filter may be wider than requested; callers
	// re-validate against the window.
	TasksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Task, error)

	// BreaksInRange finds a user's breaks in [from, to).
	BreaksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Break, error)

	// MoodsInRange finds a user's mood check-ins in [from, to).
	MoodsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]MoodCheckin, error)

	// ListUserIDs returns all users with recorded activity, for batch
	// dashboard refreshes.
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StreakRepository defines persistence for per-user streak documents.
type StreakRepository interface {
	// FindByUserID finds a user's streak document, or nil when absent.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*UserStreak, error)

	// Save persists a streak document (create or update).
	Save(ctx context.Context, streak *UserStreak) error
}
