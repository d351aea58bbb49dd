package persistence

import (
	"context"
	"time"

	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresActivityRepository implements domain.ActivityRepository using
// PostgreSQL.
type PostgresActivityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresActivityRepository creates a new PostgreSQL activity repository.
func NewPostgresActivityRepository(pool *pgxpool.Pool) *PostgresActivityRepository {
	return &PostgresActivityRepository{pool: pool}
}

// SaveTask persists a task record.
func (r *PostgresActivityRepository) SaveTask(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, type, completed, start_at, end_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			type = EXCLUDED.type,
			completed = EXCLUDED.completed,
			start_at = EXCLUDED.start_at,
			end_at = EXCLUDED.end_at`

	_, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx, query,
		task.ID, task.UserID, task.Title, string(task.Type), task.Completed,
		task.StartAt, task.EndAt, task.CreatedAt,
	)
	return err
}

// SaveBreak persists a break record.
func (r *PostgresActivityRepository) SaveBreak(ctx context.Context, br *domain.Break) error {
	query := `
		INSERT INTO breaks (id, user_id, occurred_at, legacy_timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			occurred_at = EXCLUDED.occurred_at`

	_, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx, query,
		br.ID, br.UserID, br.OccurredAt, br.Timestamp, br.CreatedAt,
	)
	return err
}

// SaveMood persists a mood check-in.
func (r *PostgresActivityRepository) SaveMood(ctx context.Context, m *domain.MoodCheckin) error {
	query := `
		INSERT INTO mood_checkins (id, user_id, mood, stress, occurred_at, legacy_timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			mood = EXCLUDED.mood,
			stress = EXCLUDED.stress,
			occurred_at = EXCLUDED.occurred_at`

	_, err := sharedPersistence.Executor(ctx, r.pool).Exec(ctx, query,
		m.ID, m.UserID, m.Mood, m.Stress, m.OccurredAt, m.Timestamp, m.CreatedAt,
	)
	return err
}

// TasksInRange finds a user's tasks whose bucket timestamp falls in [from, to).
func (r *PostgresActivityRepository) TasksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Task, error) {
	query := `
		SELECT id, user_id, title, type, completed, start_at, end_at, created_at
		FROM tasks
		WHERE user_id = $1
		  AND COALESCE(end_at, created_at, start_at) >= $2
		  AND COALESCE(end_at, created_at, start_at) < $3
		ORDER BY COALESCE(end_at, created_at, start_at)`

	rows, err := sharedPersistence.Executor(ctx, r.pool).Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		var taskType string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &taskType, &t.Completed,
			&t.StartAt, &t.EndAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Type = domain.TaskType(taskType)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// BreaksInRange finds a user's breaks in [from, to).
func (r *PostgresActivityRepository) BreaksInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Break, error) {
	query := `
		SELECT id, user_id, occurred_at, legacy_timestamp, created_at
		FROM breaks
		WHERE user_id = $1
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) >= $2
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) < $3
		ORDER BY COALESCE(occurred_at, legacy_timestamp, created_at)`

	rows, err := sharedPersistence.Executor(ctx, r.pool).Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breaks []domain.Break
	for rows.Next() {
		var b domain.Break
		if err := rows.Scan(&b.ID, &b.UserID, &b.OccurredAt, &b.Timestamp, &b.CreatedAt); err != nil {
			return nil, err
		}
		breaks = append(breaks, b)
	}
	return breaks, rows.Err()
}

// MoodsInRange finds a user's mood check-ins in [from, to).
func (r *PostgresActivityRepository) MoodsInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MoodCheckin, error) {
	query := `
		SELECT id, user_id, mood, stress, occurred_at, legacy_timestamp, created_at
		FROM mood_checkins
		WHERE user_id = $1
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) >= $2
		  AND COALESCE(occurred_at, legacy_timestamp, created_at) < $3
		ORDER BY COALESCE(occurred_at, legacy_timestamp, created_at)`

	rows, err := sharedPersistence.Executor(ctx, r.pool).Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moods []domain.MoodCheckin
	for rows.Next() {
		var m domain.MoodCheckin
		if err := rows.Scan(&m.ID, &m.UserID, &m.Mood, &m.Stress,
			&m.OccurredAt, &m.Timestamp, &m.CreatedAt); err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// ListUserIDs returns all users with recorded activity.
func (r *PostgresActivityRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT user_id FROM tasks
		UNION
		SELECT user_id FROM breaks
		UNION
		SELECT user_id FROM mood_checkins`

	rows, err := sharedPersistence.Executor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
