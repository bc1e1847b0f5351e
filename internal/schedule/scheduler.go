package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scheduler is the write side used by the order service.
type Scheduler struct {
	store Store
	now   func() time.Time
}

func NewScheduler(store Store) *Scheduler {
	return &Scheduler{store: store, now: time.Now}
}

func (s *Scheduler) ScheduleDeletion(ctx context.Context, orderID int64, due time.Time) error {
	return s.store.Add(ctx, &Task{
		ID:        uuid.New(),
		OrderID:   orderID,
		Action:    ActionDeleteOrder,
		DueAt:     due,
		CreatedAt: s.now(),
	})
}

func (s *Scheduler) ScheduleReportRemoval(ctx context.Context, orderID int64, due time.Time) error {
	return s.store.Add(ctx, &Task{
		ID:        uuid.New(),
		OrderID:   orderID,
		Action:    ActionClearSalesReport,
		DueAt:     due,
		CreatedAt: s.now(),
	})
}

func (s *Scheduler) CancelForOrder(ctx context.Context, orderID int64) error {
	return s.store.CancelForOrder(ctx, orderID)
}
