package persistence

import (
	"context"
	"errors"
	"time"

	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgresStreakRepository implements domain.StreakRepository using
// PostgreSQL. The active-day history is stored as a TEXT[] column.
type PostgresStreakRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresStreakRepository creates a new PostgreSQL streak repository.
func NewPostgresStreakRepository(pool *pgxpool.Pool) *PostgresStreakRepository {
	return &PostgresStreakRepository{pool: pool}
}

// FindByUserID finds a user's streak document, or nil when absent.
func (r *PostgresStreakRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStreak, error) {
	query := `
		SELECT id, user_id, history, current_streak, longest_streak,
		       last_active_day, weekly_goal_hours, created_at, updated_at
		FROM user_streaks
		WHERE user_id = $1`

	var (
		id              uuid.UUID
		rowUserID       uuid.UUID
		history         []string
		current         int
		longest         int
		lastActiveDay   string
		weeklyGoalHours float64
		createdAt       time.Time
		updatedAt       time.Time
	)

	row := sharedPersistence.Executor(ctx, r.pool).QueryRow(ctx, query, userID)
	err := row.Scan(&id, &rowUserID, pq.Array(&history), &current, &longest,
		&lastActiveDay, &weeklyGoalHours, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	keys := make(domain.StreakHistory, len(history))
	for i, h := range history {
		keys[i] = domain.DayKey(h)
	}

	return domain.RehydrateUserStreak(
		id, rowUserID, keys, current, longest,
		domain.DayKey(lastActiveDay), weeklyGoalHours, createdAt, updatedAt,
	), nil
}

// Save persists a streak document (create or update).
func (r *PostgresStreakRepository) Save(ctx context.Context, streak *domain.UserStreak) error {
	query := `
		INSERT INTO user_streaks (
			id, user_id, history, current_streak, longest_streak,
			last_active_day, weekly_goal_hours, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			history = EXCLUDED.history,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_active_day = EXCLUDED.last_active_day,
			weekly_goal_hours = EXCLUDED.weekly_goal_hours,
			updated_at = EXCLUDED.updated_at`

	history := make([]string, len(streak.History()))
	for i, key := range streak.History() {
		history[i] = string(key)
	}

	_, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx, query,
		streak.ID(), streak.UserID(), pq.Array(history),
		streak.Current(), streak.Longest(), string(streak.LastActiveDay()),
		streak.WeeklyGoalHours(), streak.CreatedAt(), streak.UpdatedAt(),
	)
	return err
}
