package services

import (
	"context"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockActivityRepo is a mock implementation of domain.ActivityRepository.
type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) SaveTask(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockActivityRepo) SaveBreak(ctx context.Context, br *domain.Break) error {
	args := m.Called(ctx, br)
	return args.Error(0)
}

func (m *mockActivityRepo) SaveMood(ctx context.Context, checkin *domain.MoodCheckin) error {
	args := m.Called(ctx, checkin)
	return args.Error(0)
}

func (m *mockActivityRepo) TasksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *mockActivityRepo) BreaksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Break, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Break), args.Error(1)
}

func (m *mockActivityRepo) MoodsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MoodCheckin, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoodCheckin), args.Error(1)
}

func (m *mockActivityRepo) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// mockStreakRepo is a mock implementation of domain.StreakRepository.
type mockStreakRepo struct {
	mock.Mock
}

func (m *mockStreakRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStreak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStreak), args.Error(1)
}

func (m *mockStreakRepo) Save(ctx context.Context, streak *domain.UserStreak) error {
	args := m.Called(ctx, streak)
	return args.Error(0)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// mockCache is a mock implementation of DashboardCache.
type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, userID uuid.UUID, dashboard *Dashboard, ttl time.Duration) error {
	args := m.Called(ctx, userID, dashboard, ttl)
	return args.Error(0)
}

func (m *mockCache) Get(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Dashboard), args.Error(1)
}
