package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/tracking/application/services"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDashboardHandler(activityRepo *mockActivityRepo, streakRepo *mockStreakRepo, uow *mockUnitOfWork, cache *mockCache) *GetDashboardHandler {
	builder := services.NewDashboardBuilder(activityRepo, streakRepo, 40)
	return NewGetDashboardHandler(builder, streakRepo, uow, cache, nil, nil, 30*time.Minute)
}

func expectBuild(activityRepo *mockActivityRepo, streakRepo *mockStreakRepo, txCtx context.Context, userID uuid.UUID, tasks []domain.Task) {
	activityRepo.On("TasksInRange", txCtx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(tasks, nil)
	activityRepo.On("BreaksInRange", txCtx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(nil, nil)
	activityRepo.On("MoodsInRange", txCtx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(nil, nil)
	streakRepo.On("FindByUserID", txCtx, userID).Return(nil, nil)
}

func TestGetDashboardHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("returns a cached dashboard without recomputing", func(t *testing.T) {
		activityRepo := new(mockActivityRepo)
		streakRepo := new(mockStreakRepo)
		uow := new(mockUnitOfWork)
		cache := new(mockCache)
		handler := newDashboardHandler(activityRepo, streakRepo, uow, cache)

		ctx := context.Background()
		cached := &services.Dashboard{UserID: userID, CurrentStreak: 3}
		cache.On("Get", ctx, userID).Return(cached, nil)

		result, err := handler.Handle(ctx, GetDashboardQuery{UserID: userID})

		require.NoError(t, err)
		assert.Same(t, cached, result)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("computes and persists on cache miss", func(t *testing.T) {
		activityRepo := new(mockActivityRepo)
		streakRepo := new(mockStreakRepo)
		uow := new(mockUnitOfWork)
		cache := new(mockCache)
		handler := newDashboardHandler(activityRepo, streakRepo, uow, cache)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		end := time.Now().Add(-time.Hour)
		tasks := []domain.Task{
			{ID: uuid.New(), UserID: userID, Type: domain.TaskTypeWork, EndAt: &end},
		}

		cache.On("Get", ctx, userID).Return(nil, nil)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		expectBuild(activityRepo, streakRepo, txCtx, userID, tasks)
		streakRepo.On("Save", txCtx, mock.AnythingOfType("*domain.UserStreak")).Return(nil)
		cache.On("Set", ctx, userID, mock.AnythingOfType("*services.Dashboard"), 30*time.Minute).Return(nil)

		result, err := handler.Handle(ctx, GetDashboardQuery{UserID: userID})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, userID, result.UserID)
		assert.Equal(t, 1, result.CurrentStreak)

		streakRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("fresh query bypasses the cache", func(t *testing.T) {
		activityRepo := new(mockActivityRepo)
		streakRepo := new(mockStreakRepo)
		uow := new(mockUnitOfWork)
		cache := new(mockCache)
		handler := newDashboardHandler(activityRepo, streakRepo, uow, cache)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		expectBuild(activityRepo, streakRepo, txCtx, userID, nil)
		cache.On("Set", ctx, userID, mock.AnythingOfType("*services.Dashboard"), 30*time.Minute).Return(nil)

		result, err := handler.Handle(ctx, GetDashboardQuery{UserID: userID, Fresh: true})

		require.NoError(t, err)
		require.NotNil(t, result)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("unchanged streak is not rewritten", func(t *testing.T) {
		activityRepo := new(mockActivityRepo)
		streakRepo := new(mockStreakRepo)
		uow := new(mockUnitOfWork)
		cache := new(mockCache)
		handler := newDashboardHandler(activityRepo, streakRepo, uow, cache)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		cache.On("Get", ctx, userID).Return(nil, nil)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		expectBuild(activityRepo, streakRepo, txCtx, userID, nil)
		cache.On("Set", ctx, userID, mock.AnythingOfType("*services.Dashboard"), 30*time.Minute).Return(nil)

		result, err := handler.Handle(ctx, GetDashboardQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 0, result.CurrentStreak)
		streakRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cache read failure falls through to recomputation", func(t *testing.T) {
		activityRepo := new(mockActivityRepo)
		streakRepo := new(mockStreakRepo)
		uow := new(mockUnitOfWork)
		cache := new(mockCache)
		handler := newDashboardHandler(activityRepo, streakRepo, uow, cache)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		cache.On("Get", ctx, userID).Return(nil, errors.New("redis down"))
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		expectBuild(activityRepo, streakRepo, txCtx, userID, nil)
		cache.On("Set", ctx, userID, mock.AnythingOfType("*services.Dashboard"), 30*time.Minute).Return(errors.New("redis down"))

		result, err := handler.Handle(ctx, GetDashboardQuery{UserID: userID})

		require.NoError(t, err)
		require.NotNil(t, result)
	})

	t.Run("rolls back when the build fails", func(t *testing.T) {
		activityRepo := new(mockActivityRepo)
		streakRepo := new(mockStreakRepo)
		uow := new(mockUnitOfWork)
		cache := new(mockCache)
		handler := newDashboardHandler(activityRepo, streakRepo, uow, cache)

		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")

		cache.On("Get", ctx, userID).Return(nil, nil)
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		activityRepo.On("TasksInRange", txCtx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(nil, errors.New("query error"))

		result, err := handler.Handle(ctx, GetDashboardQuery{UserID: userID})

		assert.Error(t, err)
		assert.Nil(t, result)
		uow.AssertExpectations(t)
	})
}
