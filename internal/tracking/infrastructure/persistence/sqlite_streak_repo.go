package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// SQLiteStreakRepository implements domain.StreakRepository using SQLite.
// The active-day history is stored as a JSON array of day keys.
type SQLiteStreakRepository struct {
	db *sql.DB
}

// NewSQLiteStreakRepository creates a new SQLite streak repository.
func NewSQLiteStreakRepository(db *sql.DB) *SQLiteStreakRepository {
	return &SQLiteStreakRepository{db: db}
}

// FindByUserID finds a user's streak document, or nil when absent.
func (r *SQLiteStreakRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserStreak, error) {
	query := `
		SELECT id, user_id, history, current_streak, longest_streak,
		       last_active_day, weekly_goal_hours, created_at, updated_at
		FROM user_streaks
		WHERE user_id = ?`

	var idStr, userIDStr, historyJSON, lastActiveDay string
	var current, longest int
	var weeklyGoalHours float64
	var createdAtStr, updatedAtStr string

	row := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryRowContext(ctx, query, userID.String())
	err := row.Scan(&idStr, &userIDStr, &historyJSON, &current, &longest,
		&lastActiveDay, &weeklyGoalHours, &createdAtStr, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	rowUserID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	var history domain.StreakHistory
	if err := json.Unmarshal([]byte(historyJSON), &history); err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updatedAtStr)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateUserStreak(
		id, rowUserID, history, current, longest,
		domain.DayKey(lastActiveDay), weeklyGoalHours, createdAt, updatedAt,
	), nil
}

// Save persists a streak document (create or update).
func (r *SQLiteStreakRepository) Save(ctx context.Context, streak *domain.UserStreak) error {
	query := `
		INSERT INTO user_streaks (
			id, user_id, history, current_streak, longest_streak,
			last_active_day, weekly_goal_hours, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			history = excluded.history,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_active_day = excluded.last_active_day,
			weekly_goal_hours = excluded.weekly_goal_hours,
			updated_at = excluded.updated_at`

	historyJSON, err := json.Marshal(streak.History())
	if err != nil {
		return err
	}

	_, err = sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, query,
		streak.ID().String(), streak.UserID().String(), string(historyJSON),
		streak.Current(), streak.Longest(), string(streak.LastActiveDay()),
		streak.WeeklyGoalHours(), formatTime(streak.CreatedAt()), formatTime(streak.UpdatedAt()),
	)
	return err
}
