package domain

import (
	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

// TaskLogged is emitted when a task interval is recorded.
type TaskLogged struct {
	sharedDomain.BaseEvent
	TaskID    uuid.UUID `json:"task_id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Completed bool      `json:"completed"`
}

// NewTaskLogged creates a TaskLogged event.
func NewTaskLogged(t *Task) *TaskLogged {
	return &TaskLogged{
		BaseEvent: sharedDomain.NewBaseEvent(t.ID, "Task", "tracking.task.logged"),
		TaskID:    t.ID,
		UserID:    t.UserID,
		Type:      string(t.Type),
		Completed: t.Completed,
	}
}

// BreakLogged is emitted when a break is recorded.
type BreakLogged struct {
	sharedDomain.BaseEvent
	BreakID uuid.UUID `json:"break_id"`
	UserID  uuid.UUID `json:"user_id"`
}

// NewBreakLogged creates a BreakLogged event.
func NewBreakLogged(b *Break) *BreakLogged {
	return &BreakLogged{
		BaseEvent: sharedDomain.NewBaseEvent(b.ID, "Break", "tracking.break.logged"),
		BreakID:   b.ID,
		UserID:    b.UserID,
	}
}

// MoodLogged is emitted when a mood check-in is recorded.
type MoodLogged struct {
	sharedDomain.BaseEvent
	CheckinID uuid.UUID `json:"checkin_id"`
	UserID    uuid.UUID `json:"user_id"`
	Mood      *float64  `json:"mood,omitempty"`
	Stress    *float64  `json:"stress,omitempty"`
}

// NewMoodLogged creates a MoodLogged event.
func NewMoodLogged(m *MoodCheckin) *MoodLogged {
	return &MoodLogged{
		BaseEvent: sharedDomain.NewBaseEvent(m.ID, "MoodCheckin", "tracking.mood.logged"),
		CheckinID: m.ID,
		UserID:    m.UserID,
		Mood:      m.Mood,
		Stress:    m.Stress,
	}
}

// StreakUpdated is emitted when a user's derived streak state changes.
type StreakUpdated struct {
	sharedDomain.BaseEvent
	UserID        uuid.UUID `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastActiveDay string    `json:"last_active_day,omitempty"`
}

// NewStreakUpdated creates a StreakUpdated event.
func NewStreakUpdated(s *UserStreak) *StreakUpdated {
	return &StreakUpdated{
		BaseEvent:     sharedDomain.NewBaseEvent(s.ID(), "UserStreak", "tracking.streak.updated"),
		UserID:        s.UserID(),
		CurrentStreak: s.Current(),
		LongestStreak: s.Longest(),
		LastActiveDay: string(s.LastActiveDay()),
	}
}
