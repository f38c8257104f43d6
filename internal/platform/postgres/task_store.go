package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/platform/logger"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/task"
	"github.com/google/uuid"
)

// PostgresTaskStore implements the task.TaskStore interface using PostgreSQL
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgresTaskStore
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresTaskStore{db: db}
}

// Ensure PostgresTaskStore implements task.TaskStore
var _ task.TaskStore = (*PostgresTaskStore)(nil)

// SaveTask persists a task to the database
func (s *PostgresTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	query := `
		INSERT INTO tasks (id, type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, query,
		t.ID(), t.Type(), t.Payload(), t.Status(), now, now)
	if err != nil {
		logger.FromContextOrDefault(ctx, nil).Error("failed to save task",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
		return MapError(err)
	}

	return nil
}

// UpdateTaskStatus updates the status of a task in the database
func (s *PostgresTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status task.TaskStatus,
	errorMsg string,
) error {
	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4`

	result, err := s.db.ExecContext(ctx, query, status, errorMsg, time.Now().UTC(), taskID)
	if err != nil {
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// ListPending retrieves all tasks with "pending" status
func (s *PostgresTaskStore) ListPending(ctx context.Context) ([]*task.Record, error) {
	return s.listByStatus(ctx, task.TaskStatusPending, 0)
}

// ListProcessing retrieves tasks with "processing" status, optionally
// filtered to those older than the given duration.
func (s *PostgresTaskStore) ListProcessing(ctx context.Context, olderThan time.Duration) ([]*task.Record, error) {
	return s.listByStatus(ctx, task.TaskStatusProcessing, olderThan)
}

func (s *PostgresTaskStore) listByStatus(
	ctx context.Context,
	status task.TaskStatus,
	olderThan time.Duration,
) ([]*task.Record, error) {
	query := `
		SELECT id, type, payload, status, error_message, created_at, updated_at
		FROM tasks
		WHERE status = $1`
	args := []any{status}

	if olderThan > 0 {
		query += ` AND updated_at < $2`
		args = append(args, time.Now().UTC().Add(-olderThan))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []*task.Record
	for rows.Next() {
		record := &task.Record{}
		var errorMessage sql.NullString
		if err := rows.Scan(
			&record.ID, &record.Type, &record.Payload, &record.Status,
			&errorMessage, &record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		record.ErrorMessage = errorMessage.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// WithTx returns a new TaskStore that uses the provided transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) task.TaskStore {
	return &PostgresTaskStore{db: tx}
}
