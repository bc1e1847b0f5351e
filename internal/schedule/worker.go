package schedule

import (
	"context"
	"log/slog"
	"time"

	"posadmin/internal/platform/metrics"
)

// OrderCleaner executes cleanup actions. Implementations must be idempotent:
// cleaning an order that is already gone or already cleared is a no-op.
type OrderCleaner interface {
	DeleteOrder(ctx context.Context, id int64) error
	ClearSalesReport(ctx context.Context, id int64) error
}

const claimBatchSize = 100

// Worker polls the task store and executes due cleanup. Failures are logged
// and counted, not retried; the lost task is the accepted at-least-once
// trade-off.
type Worker struct {
	store    Store
	cleaner  OrderCleaner
	interval time.Duration
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewWorker(store Store, cleaner OrderCleaner, interval time.Duration, m *metrics.Metrics, logger *slog.Logger) *Worker {
	return &Worker{
		store:    store,
		cleaner:  cleaner,
		interval: interval,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// SetNow overrides the worker clock. Tests use it to simulate elapsed hours
// without waiting.
func (w *Worker) SetNow(now func() time.Time) {
	w.now = now
}

// Run polls until ctx is cancelled. It returns ctx.Err so it slots into an
// errgroup alongside the HTTP server.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick claims and executes one batch of due tasks. Exposed for tests and for
// an eager first pass on startup.
func (w *Worker) Tick(ctx context.Context) {
	tasks, err := w.store.ClaimDue(ctx, w.now(), claimBatchSize)
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to claim due tasks", "error", err)
		return
	}

	for _, task := range tasks {
		if err := w.execute(ctx, task); err != nil {
			w.metrics.ObserveScheduledTask(string(task.Action), false)
			w.logger.ErrorContext(ctx, "scheduled task failed",
				"error", err,
				"task_id", task.ID.String(),
				"order_id", task.OrderID,
				"action", string(task.Action),
			)
			continue
		}
		w.metrics.ObserveScheduledTask(string(task.Action), true)
		w.logger.InfoContext(ctx, "scheduled task executed",
			"task_id", task.ID.String(),
			"order_id", task.OrderID,
			"action", string(task.Action),
		)
	}
}

func (w *Worker) execute(ctx context.Context, task *Task) error {
	switch task.Action {
	case ActionDeleteOrder:
		return w.cleaner.DeleteOrder(ctx, task.OrderID)
	case ActionClearSalesReport:
		return w.cleaner.ClearSalesReport(ctx, task.OrderID)
	default:
		w.logger.WarnContext(ctx, "unknown scheduled action dropped",
			"action", string(task.Action),
			"order_id", task.OrderID,
		)
		return nil
	}
}
