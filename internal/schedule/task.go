// Package schedule provides the durable scheduled-task store and the worker
// that executes delayed order cleanup. Tasks survive process restarts;
// execution is at-least-once and idempotent on the order side.
package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of cleanup a task performs.
type Action string

const (
	ActionDeleteOrder      Action = "delete_order"
	ActionClearSalesReport Action = "clear_sales_report"
)

// Task is one pending cleanup, persisted with its due time.
type Task struct {
	ID        uuid.UUID
	OrderID   int64
	Action    Action
	DueAt     time.Time
	CreatedAt time.Time
}
