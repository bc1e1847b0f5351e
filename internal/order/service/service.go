// Package service implements the order lifecycle: validated status
// transitions, date edits, the report search, and the cleanup side effects
// scheduled on specific transitions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"posadmin/internal/order/models"
	"posadmin/internal/order/store"
	"posadmin/internal/platform/metrics"
	dErrors "posadmin/pkg/domain-errors"
	"posadmin/pkg/platform/sentinel"
)

// Cleanup delays, counted from the moment of the transition.
const (
	DeleteAfterCancel       = 8 * time.Hour
	ClearReportAfterDeliver = 5 * time.Hour
)

// Scheduler queues the delayed cleanup actions. Any transition first cancels
// whatever was pending for the order, so a stale timer can never fire
// against a later state.
type Scheduler interface {
	ScheduleDeletion(ctx context.Context, orderID int64, due time.Time) error
	ScheduleReportRemoval(ctx context.Context, orderID int64, due time.Time) error
	CancelForOrder(ctx context.Context, orderID int64) error
}

type Service struct {
	orders    store.Store
	scheduler Scheduler
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func New(orders store.Store, scheduler Scheduler, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		orders:    orders,
		scheduler: scheduler,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns orders newest first, filtered by the report search term: id
// substring, name substring (case-insensitive), or phone substring.
func (s *Service) List(ctx context.Context, search string) ([]*models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list orders")
	}
	if search == "" {
		return orders, nil
	}
	filtered := orders[:0]
	for _, o := range orders {
		if o.Matches(search) {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// SetStatus applies a transition and queues its side effects. Illegal moves
// are rejected against the current state before anything is written.
func (s *Service) SetStatus(ctx context.Context, id int64, rawStatus string) error {
	status, err := models.ParseStatus(rawStatus)
	if err != nil {
		return err
	}

	current, err := s.orders.Get(ctx, id)
	if err != nil {
		return s.translate(err, "order")
	}

	if !current.Status.CanTransitionTo(status) {
		return dErrors.New(dErrors.CodeConflict,
			fmt.Sprintf("cannot transition order from %s to %s", current.Status, status))
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return s.translate(err, "order")
	}
	s.metrics.ObserveStatusTransition(string(status))

	// A new transition supersedes any cleanup queued by a previous one.
	if err := s.scheduler.CancelForOrder(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to cancel pending cleanup tasks",
			"error", err,
			"order_id", id,
		)
	}

	// Cleanup scheduling is best-effort: the transition itself has already
	// been applied and is not rolled back on scheduling failure.
	switch status {
	case models.StatusCancelled:
		if err := s.scheduler.ScheduleDeletion(ctx, id, s.now().Add(DeleteAfterCancel)); err != nil {
			s.logger.ErrorContext(ctx, "failed to schedule order deletion",
				"error", err,
				"order_id", id,
			)
		}
	case models.StatusDelivered:
		if err := s.scheduler.ScheduleReportRemoval(ctx, id, s.now().Add(ClearReportAfterDeliver)); err != nil {
			s.logger.ErrorContext(ctx, "failed to schedule sales report removal",
				"error", err,
				"order_id", id,
			)
		}
	}

	return nil
}

// Cancel is the explicit cancel action from the report screen.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.SetStatus(ctx, id, string(models.StatusCancelled))
}

// EditOrderDate mutates only the date field; status is not re-validated.
func (s *Service) EditOrderDate(ctx context.Context, id int64, orderDate time.Time) error {
	if err := s.orders.UpdateOrderDate(ctx, id, orderDate); err != nil {
		return s.translate(err, "order")
	}
	return nil
}

// RemoveFromSalesReport soft-removes the order from the report view. The row
// itself survives.
func (s *Service) RemoveFromSalesReport(ctx context.Context, id int64) error {
	if err := s.orders.ClearSalesReport(ctx, id); err != nil {
		return s.translate(err, "order")
	}
	return nil
}

// DeleteOrder physically removes an order. Reaching a missing order is a
// no-op so scheduled deletions stay idempotent.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	err := s.orders.Delete(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to delete order")
	}
	return nil
}

// ClearSalesReport is the idempotent flavor used by the cleanup worker.
func (s *Service) ClearSalesReport(ctx context.Context, id int64) error {
	err := s.orders.ClearSalesReport(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return dErrors.New(dErrors.CodeInternal, "failed to clear sales report flag")
	}
	return nil
}

func (s *Service) translate(err error, entity string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, entity+" not found")
	}
	return dErrors.New(dErrors.CodeInternal, "storage failure")
}
