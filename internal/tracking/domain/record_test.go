package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func TestNewTask(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(2 * time.Hour)

	t.Run("creates a valid work task", func(t *testing.T) {
		task, err := domain.NewTask(userID, "write report", domain.TaskTypeWork, &start, &end, false)
		require.NoError(t, err)

		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, domain.TaskTypeWork, task.Type)
		assert.True(t, task.IsWork())
		assert.NotNil(t, task.CreatedAt)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := domain.NewTask(userID, "   ", domain.TaskTypeWork, &start, &end, false)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := domain.NewTask(userID, "nap", domain.TaskType("sleep"), nil, nil, false)
		assert.ErrorIs(t, err, domain.ErrInvalidTaskType)
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		_, err := domain.NewTask(userID, "broken", domain.TaskTypeWork, &end, &start, false)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	})

	t.Run("rejects missing user", func(t *testing.T) {
		_, err := domain.NewTask(uuid.Nil, "orphan", domain.TaskTypeWork, &start, &end, false)
		assert.ErrorIs(t, err, domain.ErrMissingUser)
	})
}

func TestTask_BucketTime_FallbackOrder(t *testing.T) {
	endAt := time.Date(2024, 6, 10, 17, 0, 0, 0, time.Local)
	createdAt := time.Date(2024, 6, 9, 8, 0, 0, 0, time.Local)
	startAt := time.Date(2024, 6, 8, 9, 0, 0, 0, time.Local)

	t.Run("end time wins", func(t *testing.T) {
		task := domain.Task{EndAt: &endAt, CreatedAt: &createdAt, StartAt: &startAt}
		ts, ok := task.BucketTime()
		require.True(t, ok)
		assert.Equal(t, endAt, ts)
	})

	t.Run("creation time when no end", func(t *testing.T) {
		task := domain.Task{CreatedAt: &createdAt, StartAt: &startAt}
		ts, ok := task.BucketTime()
		require.True(t, ok)
		assert.Equal(t, createdAt, ts)
	})

	t.Run("start time as last resort", func(t *testing.T) {
		task := domain.Task{StartAt: &startAt}
		ts, ok := task.BucketTime()
		require.True(t, ok)
		assert.Equal(t, startAt, ts)
	})

	t.Run("no timestamps at all", func(t *testing.T) {
		_, ok := domain.Task{}.BucketTime()
		assert.False(t, ok)
	})
}

func TestBreak_BucketTime_FallbackOrder(t *testing.T) {
	occurredAt := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	legacy := time.Date(2024, 6, 9, 12, 0, 0, 0, time.Local)
	createdAt := time.Date(2024, 6, 8, 12, 0, 0, 0, time.Local)

	t.Run("occurrence time wins", func(t *testing.T) {
		br := domain.Break{OccurredAt: &occurredAt, Timestamp: &legacy, CreatedAt: &createdAt}
		ts, ok := br.BucketTime()
		require.True(t, ok)
		assert.Equal(t, occurredAt, ts)
	})

	t.Run("legacy timestamp before creation time", func(t *testing.T) {
		br := domain.Break{Timestamp: &legacy, CreatedAt: &createdAt}
		ts, ok := br.BucketTime()
		require.True(t, ok)
		assert.Equal(t, legacy, ts)
	})

	t.Run("creation time as last resort", func(t *testing.T) {
		br := domain.Break{CreatedAt: &createdAt}
		ts, ok := br.BucketTime()
		require.True(t, ok)
		assert.Equal(t, createdAt, ts)
	})
}

func TestNewMoodCheckin(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)

	t.Run("creates with both values", func(t *testing.T) {
		m, err := domain.NewMoodCheckin(userID, at, floatPtr(7), floatPtr(3))
		require.NoError(t, err)
		assert.Equal(t, 7.0, *m.Mood)
		assert.Equal(t, 3.0, *m.Stress)
	})

	t.Run("creates without values", func(t *testing.T) {
		m, err := domain.NewMoodCheckin(userID, at, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, m.Mood)
		assert.Nil(t, m.Stress)
	})

	t.Run("rejects mood out of range", func(t *testing.T) {
		_, err := domain.NewMoodCheckin(userID, at, floatPtr(11), nil)
		assert.ErrorIs(t, err, domain.ErrMoodOutOfRange)
	})

	t.Run("rejects stress out of range", func(t *testing.T) {
		_, err := domain.NewMoodCheckin(userID, at, nil, floatPtr(0))
		assert.ErrorIs(t, err, domain.ErrStressOutOfRange)
	})
}
