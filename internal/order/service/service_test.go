package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"posadmin/internal/order/models"
	"posadmin/internal/order/store"
	"posadmin/internal/platform/metrics"
	"posadmin/internal/schedule"
	dErrors "posadmin/pkg/domain-errors"
)

var serviceMetrics = metrics.NewWith(prometheus.NewRegistry())

type OrderServiceSuite struct {
	suite.Suite
	orders  *store.InMemory
	tasks   *schedule.InMemoryStore
	service *Service
	ctx     context.Context
	base    time.Time
}

func (s *OrderServiceSuite) SetupTest() {
	s.orders = store.NewInMemory()
	s.tasks = schedule.NewInMemoryStore()
	s.service = New(s.orders, schedule.NewScheduler(s.tasks), serviceMetrics, slog.New(slog.DiscardHandler))
	s.base = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return s.base }
	s.ctx = context.Background()
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) seed(id int64, status models.Status) {
	s.orders.Seed(&models.Order{
		ID:            id,
		FullName:      "Maria Santos",
		PhoneNumber:   "0917-555-2368",
		Total:         420,
		OrderDate:     s.base.Add(-time.Duration(id) * time.Hour),
		Status:        status,
		InSalesReport: true,
	})
}

func (s *OrderServiceSuite) pending(orderID int64) []*schedule.Task {
	tasks, err := s.tasks.PendingForOrder(s.ctx, orderID)
	s.Require().NoError(err)
	return tasks
}

func (s *OrderServiceSuite) TestSetStatus() {
	s.Run("allows the forward path", func() {
		s.seed(1, models.StatusProcessing)
		s.Require().NoError(s.service.SetStatus(s.ctx, 1, "Shipped"))
		s.Require().NoError(s.service.SetStatus(s.ctx, 1, "Delivered"))
	})

	s.Run("rejects an illegal move with conflict", func() {
		s.seed(2, models.StatusProcessing)
		err := s.service.SetStatus(s.ctx, 2, "Delivered")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeConflict))

		// Nothing was written.
		found, err := s.orders.Get(s.ctx, 2)
		s.Require().NoError(err)
		s.Equal(models.StatusProcessing, found.Status)
	})

	s.Run("rejects an unknown status before touching the store", func() {
		err := s.service.SetStatus(s.ctx, 2, "Refunded")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})

	s.Run("returns not found for a missing order", func() {
		err := s.service.SetStatus(s.ctx, 99, "Shipped")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *OrderServiceSuite) TestCancelledSchedulesDeletion() {
	s.seed(7, models.StatusProcessing)
	s.Require().NoError(s.service.SetStatus(s.ctx, 7, "Cancelled"))

	tasks := s.pending(7)
	s.Require().Len(tasks, 1)
	s.Equal(schedule.ActionDeleteOrder, tasks[0].Action)
	s.True(tasks[0].DueAt.Equal(s.base.Add(8 * time.Hour)))
}

func (s *OrderServiceSuite) TestDeliveredSchedulesReportRemoval() {
	s.seed(7, models.StatusShipped)
	s.Require().NoError(s.service.SetStatus(s.ctx, 7, "Delivered"))

	tasks := s.pending(7)
	s.Require().Len(tasks, 1)
	s.Equal(schedule.ActionClearSalesReport, tasks[0].Action)
	s.True(tasks[0].DueAt.Equal(s.base.Add(5 * time.Hour)))
}

func (s *OrderServiceSuite) TestReinstateCancelsPendingDeletion() {
	s.seed(7, models.StatusProcessing)
	s.Require().NoError(s.service.SetStatus(s.ctx, 7, "Cancelled"))
	s.Require().Len(s.pending(7), 1)

	// Reinstating before the 8 hours elapse removes the pending deletion.
	s.Require().NoError(s.service.SetStatus(s.ctx, 7, "Processing"))
	s.Empty(s.pending(7))
}

func (s *OrderServiceSuite) TestDeliveredAfterFiveHours() {
	s.seed(7, models.StatusShipped)
	s.Require().NoError(s.service.SetStatus(s.ctx, 7, "Delivered"))

	worker := schedule.NewWorker(s.tasks, s.service, time.Minute, serviceMetrics, slog.New(slog.DiscardHandler))
	worker.SetNow(func() time.Time { return s.base.Add(5 * time.Hour) })
	worker.Tick(s.ctx)

	found, err := s.orders.Get(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal(models.StatusDelivered, found.Status)
	s.False(found.InSalesReport, "order leaves the report view")
}

func (s *OrderServiceSuite) TestCancelledDeletedAfterEightHours() {
	s.seed(7, models.StatusProcessing)
	s.Require().NoError(s.service.SetStatus(s.ctx, 7, "Cancelled"))

	worker := schedule.NewWorker(s.tasks, s.service, time.Minute, serviceMetrics, slog.New(slog.DiscardHandler))

	// Not yet due.
	worker.SetNow(func() time.Time { return s.base.Add(7 * time.Hour) })
	worker.Tick(s.ctx)
	_, err := s.orders.Get(s.ctx, 7)
	s.Require().NoError(err)

	worker.SetNow(func() time.Time { return s.base.Add(8 * time.Hour) })
	worker.Tick(s.ctx)
	_, err = s.orders.Get(s.ctx, 7)
	s.Require().Error(err)
}

func (s *OrderServiceSuite) TestEditOrderDate() {
	s.seed(7, models.StatusShipped)
	before, err := s.orders.Get(s.ctx, 7)
	s.Require().NoError(err)

	newDate := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.service.EditOrderDate(s.ctx, 7, newDate))

	after, err := s.orders.Get(s.ctx, 7)
	s.Require().NoError(err)
	s.True(after.OrderDate.Equal(newDate))
	s.Equal(before.Status, after.Status)
	s.Equal(before.FullName, after.FullName)
	s.Equal(before.Total, after.Total)

	err = s.service.EditOrderDate(s.ctx, 99, newDate)
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *OrderServiceSuite) TestListFilter() {
	s.orders.Seed(&models.Order{ID: 555, FullName: "Juan Cruz", PhoneNumber: "0918-111-2222", OrderDate: s.base, Status: models.StatusProcessing})
	s.orders.Seed(&models.Order{ID: 2, FullName: "Ana 555 Reyes", PhoneNumber: "0918-333-4444", OrderDate: s.base.Add(time.Hour), Status: models.StatusProcessing})
	s.orders.Seed(&models.Order{ID: 3, FullName: "Pedro Lim", PhoneNumber: "0917-555-2368", OrderDate: s.base.Add(2 * time.Hour), Status: models.StatusProcessing})
	s.orders.Seed(&models.Order{ID: 4, FullName: "Carla Tan", PhoneNumber: "0918-777-8888", OrderDate: s.base.Add(3 * time.Hour), Status: models.StatusProcessing})

	matched, err := s.service.List(s.ctx, "555")
	s.Require().NoError(err)
	s.Require().Len(matched, 3)
	// Still newest first.
	s.Equal(int64(3), matched[0].ID)
	s.Equal(int64(2), matched[1].ID)
	s.Equal(int64(555), matched[2].ID)

	all, err := s.service.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *OrderServiceSuite) TestRemoveFromSalesReport() {
	s.seed(7, models.StatusDelivered)
	s.Require().NoError(s.service.RemoveFromSalesReport(s.ctx, 7))

	found, err := s.orders.Get(s.ctx, 7)
	s.Require().NoError(err)
	s.False(found.InSalesReport)

	err = s.service.RemoveFromSalesReport(s.ctx, 99)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
}

func (s *OrderServiceSuite) TestCleanupIsIdempotent() {
	// Worker-facing methods treat a missing order as already cleaned.
	s.Require().NoError(s.service.DeleteOrder(s.ctx, 99))
	s.Require().NoError(s.service.ClearSalesReport(s.ctx, 99))
}
