package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTaskType  = errors.New("invalid task type")
	ErrInvalidInterval  = errors.New("task end must not precede start")
	ErrMissingUser      = errors.New("user ID cannot be empty")
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrMoodOutOfRange   = errors.New("mood value out of range")
	ErrStressOutOfRange = errors.New("stress value out of range")
)

// TaskType discriminates work intervals from break intervals. Only work
// tasks qualify for streaks and daily task buckets.
type TaskType string

const (
	TaskTypeWork  TaskType = "work"
	TaskTypeBreak TaskType = "break"
)

// IsValid checks if the task type is known.
func (t TaskType) IsValid() bool {
	return t == TaskTypeWork || t == TaskTypeBreak
}

// Task is a timed work or break interval. Timestamp fields are pointers
// because historical records imported from earlier clients may carry any
// subset of them; resolution order is defined by BucketTime.
type Task struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Type      TaskType
	Completed bool
	StartAt   *time.Time
	EndAt     *time.Time
	CreatedAt *time.Time
}

// NewTask creates a validated task record.
func NewTask(userID uuid.UUID, title string, taskType TaskType, startAt, endAt *time.Time, completed bool) (*Task, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !taskType.IsValid() {
		return nil, ErrInvalidTaskType
	}
	if startAt != nil && endAt != nil && endAt.Before(*startAt) {
		return nil, ErrInvalidInterval
	}

	now := time.Now()
	return &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Type:      taskType,
		Completed: completed,
		StartAt:   startAt,
		EndAt:     endAt,
		CreatedAt: &now,
	}, nil
}

// IsWork reports whether the task qualifies for streaks and buckets.
func (t Task) IsWork() bool {
	return t.Type == TaskTypeWork
}

// BucketTime resolves the timestamp that decides which day the task
// belongs to: end time, then creation time, then start time. Returns
// false when no timestamp is present; such records are skipped.
func (t Task) BucketTime() (time.Time, bool) {
	return firstPresent(t.EndAt, t.CreatedAt, t.StartAt)
}

// Interval returns the task's [start, end) interval when both ends exist.
func (t Task) Interval() (start, end time.Time, ok bool) {
	if t.StartAt == nil || t.EndAt == nil {
		return time.Time{}, time.Time{}, false
	}
	return *t.StartAt, *t.EndAt, true
}

// Break is a logged rest period.
type Break struct {
	ID     uuid.UUID
	UserID uuid.UUID
	// OccurredAt is when the break was taken.
	OccurredAt *time.Time
	// Timestamp is the field name used by pre-v2 clients; kept so old
	// records still bucket correctly.
	Timestamp *time.Time
	CreatedAt *time.Time
}

// NewBreak creates a break record occurring at the given time.
func NewBreak(userID uuid.UUID, occurredAt time.Time) (*Break, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	now := time.Now()
	return &Break{
		ID:         uuid.New(),
		UserID:     userID,
		OccurredAt: &occurredAt,
		CreatedAt:  &now,
	}, nil
}

// BucketTime resolves the break's day: occurrence time, legacy timestamp,
// then creation time.
func (b Break) BucketTime() (time.Time, bool) {
	return firstPresent(b.OccurredAt, b.Timestamp, b.CreatedAt)
}

// MoodCheckin is a mood/stress self-report. Mood and Stress are pointers:
// a check-in with neither value still counts toward daily engagement.
type MoodCheckin struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Mood   *float64
	Stress *float64
	// OccurredAt / Timestamp / CreatedAt: same legacy fallback as Break.
	OccurredAt *time.Time
	Timestamp  *time.Time
	CreatedAt  *time.Time
}

// NewMoodCheckin creates a validated mood check-in. Mood and stress are
// optional; present values must be within [1, 10].
func NewMoodCheckin(userID uuid.UUID, occurredAt time.Time, mood, stress *float64) (*MoodCheckin, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if mood != nil && (*mood < 1 || *mood > 10) {
		return nil, ErrMoodOutOfRange
	}
	if stress != nil && (*stress < 1 || *stress > 10) {
		return nil, ErrStressOutOfRange
	}
	now := time.Now()
	return &MoodCheckin{
		ID:         uuid.New(),
		UserID:     userID,
		Mood:       mood,
		Stress:     stress,
		OccurredAt: &occurredAt,
		CreatedAt:  &now,
	}, nil
}

// BucketTime resolves the check-in's day: occurrence time, legacy
// timestamp, then creation time.
func (m MoodCheckin) BucketTime() (time.Time, bool) {
	return firstPresent(m.OccurredAt, m.Timestamp, m.CreatedAt)
}

// firstPresent returns the first non-nil timestamp.
func firstPresent(candidates ...*time.Time) (time.Time, bool) {
	for _, c := range candidates {
		if c != nil {
			return *c, true
		}
	}
	return time.Time{}, false
}
