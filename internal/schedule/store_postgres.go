package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore persists scheduled tasks so cleanup survives restarts.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Add(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO scheduled_tasks (id, order_id, action, due_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query, task.ID, task.OrderID, task.Action, task.DueAt, task.CreatedAt)
	if err != nil {
		return fmt.Errorf("add scheduled task: %w", err)
	}
	return nil
}

// ClaimDue removes and returns due tasks in one statement, so a claimed task
// can never be claimed again even across processes.
func (s *PostgresStore) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*Task, error) {
	query := `
		DELETE FROM scheduled_tasks
		WHERE id IN (
			SELECT id FROM scheduled_tasks
			WHERE due_at <= $1
			ORDER BY due_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, order_id, action, due_at, created_at
	`
	rows, err := s.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (s *PostgresStore) CancelForOrder(ctx context.Context, orderID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM scheduled_tasks WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("cancel tasks for order: %w", err)
	}
	return nil
}

func (s *PostgresStore) PendingForOrder(ctx context.Context, orderID int64) ([]*Task, error) {
	query := `
		SELECT id, order_id, action, due_at, created_at
		FROM scheduled_tasks
		WHERE order_id = $1
		ORDER BY due_at
	`
	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("pending tasks for order: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.OrderID, &t.Action, &t.DueAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan scheduled task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}
