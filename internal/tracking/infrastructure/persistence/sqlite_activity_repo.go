package persistence

import (
	"context"
	"database/sql"
	"time"

	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// SQLiteActivityRepository implements domain.ActivityRepository using
// SQLite for zero-config local mode. Timestamps are stored as UTC RFC3339
// strings so range filters compare lexicographically.
type SQLiteActivityRepository struct {
	db *sql.DB
}

// NewSQLiteActivityRepository creates a new SQLite activity repository.
func NewSQLiteActivityRepository(db *sql.DB) *SQLiteActivityRepository {
	return &SQLiteActivityRepository{db: db}
}

// SaveTask persists a task record.
func (r *SQLiteActivityRepository) SaveTask(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, type, completed, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			type = excluded.type,
			completed = excluded.completed,
			start_at = excluded.start_at,
			end_at = excluded.end_at`

	_, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, query,
		task.ID.String(), task.UserID.String(), task.Title, string(task.Type),
		boolToInt(task.Completed), timeToNull(task.StartAt), timeToNull(task.EndAt),
		timeToNull(task.CreatedAt),
	)
	return err
}

// SaveBreak persists a break record.
func (r *SQLiteActivityRepository) SaveBreak(ctx context.Context, br *domain.Break) error {
	query := `
		INSERT INTO breaks (id, user_id, occurred_at, legacy_timestamp, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			occurred_at = excluded.occurred_at`

	_, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, query,
		br.ID.String(), br.UserID.String(), timeToNull(br.OccurredAt),
		timeToNull(br.Timestamp), timeToNull(br.CreatedAt),
	)
	return err
}

// SaveMood persists a mood check-in.
func (r *SQLiteActivityRepository) SaveMood(ctx context.Context, m *domain.MoodCheckin) error {
	query := `
		INSERT INTO mood_checkins (id, user_id, mood, stress, occurred_at, legacy_timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			mood = excluded.mood,
			stress = excluded.stress,
			occurred_at = excluded.occurred_at`

	_, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID.String(), m.UserID.String(), m.Mood, m.Stress,
		timeToNull(m.OccurredAt), timeToNull(m.Timestamp), timeToNull(m.CreatedAt),
	)
	return err
}

// TasksInRange finds a user's tasks whose bucket timestamp falls in [from, to).
func (r *SQLiteActivityRepository) TasksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Task, error) {
	query := `
		SELECT id, user_id, title, type, completed, start_at, end_at, created_at
		FROM tasks
		WHERE user_id = ?
		  AND COALESCE(end_at, created_at, start_at) >= ?
		  AND COALESCE(end_at, created_at, start_at) < ?
		ORDER BY COALESCE(end_at, created_at, start_at)`

	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx, query,
		userID.String(), formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var idStr, userIDStr, taskType string
		var completed int
		var startAt, endAt, createdAt sql.NullString
		if err := rows.Scan(&idStr, &userIDStr, &t.Title, &taskType, &completed,
			&startAt, &endAt, &createdAt); err != nil {
			return nil, err
		}
		if t.ID, err = uuid.Parse(idStr); err != nil {
			return nil, err
		}
		if t.UserID, err = uuid.Parse(userIDStr); err != nil {
			return nil, err
		}
		t.Type = domain.TaskType(taskType)
		t.Completed = completed != 0
		if t.StartAt, err = nullToTime(startAt); err != nil {
			return nil, err
		}
		if t.EndAt, err = nullToTime(endAt); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = nullToTime(createdAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// BreaksInRange finds a user's breaks in [from, to).
func (r *SQLiteActivityRepository) BreaksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Break, error) {
	query := `
		SELECT id, user_id, occurred_at, legacy_timestamp, created_at
		FROM breaks
		WHERE user_id = ?
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) >= ?
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) < ?
		ORDER BY COALESCE(occurred_at, legacy_timestamp, created_at)`

	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx, query,
		userID.String(), formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breaks []domain.Break
	for rows.Next() {
		var b domain.Break
		var idStr, userIDStr string
		var occurredAt, legacyTS, createdAt sql.NullString
		if err := rows.Scan(&idStr, &userIDStr, &occurredAt, &legacyTS, &createdAt); err != nil {
			return nil, err
		}
		if b.ID, err = uuid.Parse(idStr); err != nil {
			return nil, err
		}
		if b.UserID, err = uuid.Parse(userIDStr); err != nil {
			return nil, err
		}
		if b.OccurredAt, err = nullToTime(occurredAt); err != nil {
			return nil, err
		}
		if b.Timestamp, err = nullToTime(legacyTS); err != nil {
			return nil, err
		}
		if b.CreatedAt, err = nullToTime(createdAt); err != nil {
			return nil, err
		}
		breaks = append(breaks, b)
	}
	return breaks, rows.Err()
}

// MoodsInRange finds a user's mood check-ins in [from, to).
func (r *SQLiteActivityRepository) MoodsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MoodCheckin, error) {
	query := `
		SELECT id, user_id, mood, stress, occurred_at, legacy_timestamp, created_at
		FROM mood_checkins
		WHERE user_id = ?
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) >= ?
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) < ?
		ORDER BY COALESCE(occurred_at, legacy_timestamp, created_at)`

	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx, query,
		userID.String(), formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moods []domain.MoodCheckin
	for rows.Next() {
		var m domain.MoodCheckin
		var idStr, userIDStr string
		var mood, stress sql.NullFloat64
		var occurredAt, legacyTS, createdAt sql.NullString
		if err := rows.Scan(&idStr, &userIDStr, &mood, &stress,
			&occurredAt, &legacyTS, &createdAt); err != nil {
			return nil, err
		}
		if m.ID, err = uuid.Parse(idStr); err != nil {
			return nil, err
		}
		if m.UserID, err = uuid.Parse(userIDStr); err != nil {
			return nil, err
		}
		if mood.Valid {
			m.Mood = &mood.Float64
		}
		if stress.Valid {
			m.Stress = &stress.Float64
		}
		if m.OccurredAt, err = nullToTime(occurredAt); err != nil {
			return nil, err
		}
		if m.Timestamp, err = nullToTime(legacyTS); err != nil {
			return nil, err
		}
		if m.CreatedAt, err = nullToTime(createdAt); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// ListUserIDs returns all users with recorded activity.
func (r *SQLiteActivityRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT user_id FROM tasks
		UNION
		SELECT user_id FROM breaks
		UNION
		SELECT user_id FROM mood_checkins`

	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var idStr string
		if err := rows.Scan(&idStr); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func timeToNull(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullToTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
