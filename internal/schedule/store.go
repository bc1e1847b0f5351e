package schedule

import (
	"context"
	"time"
)

// Store persists pending tasks. ClaimDue atomically removes and returns
// tasks whose due time has passed, so two workers never execute the same
// task twice.
type Store interface {
	Add(ctx context.Context, task *Task) error
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*Task, error)
	CancelForOrder(ctx context.Context, orderID int64) error
	PendingForOrder(ctx context.Context, orderID int64) ([]*Task, error)
}
