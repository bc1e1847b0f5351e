package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TaskStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	base  time.Time
}

func (s *TaskStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
	s.base = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestTaskStoreSuite(t *testing.T) {
	suite.Run(t, new(TaskStoreSuite))
}

func (s *TaskStoreSuite) addTask(orderID int64, action Action, due time.Time) *Task {
	task := &Task{
		ID:        uuid.New(),
		OrderID:   orderID,
		Action:    action,
		DueAt:     due,
		CreatedAt: s.base,
	}
	s.Require().NoError(s.store.Add(s.ctx, task))
	return task
}

func (s *TaskStoreSuite) TestClaimDue() {
	s.Run("claims only tasks past their due time", func() {
		s.addTask(1, ActionDeleteOrder, s.base.Add(8*time.Hour))
		s.addTask(2, ActionClearSalesReport, s.base.Add(5*time.Hour))

		claimed, err := s.store.ClaimDue(s.ctx, s.base.Add(6*time.Hour), claimBatchSize)
		s.Require().NoError(err)
		s.Require().Len(claimed, 1)
		s.Equal(int64(2), claimed[0].OrderID)
	})

	s.Run("a claimed task is gone", func() {
		claimed, err := s.store.ClaimDue(s.ctx, s.base.Add(6*time.Hour), claimBatchSize)
		s.Require().NoError(err)
		s.Empty(claimed)

		pending, err := s.store.PendingForOrder(s.ctx, 2)
		s.Require().NoError(err)
		s.Empty(pending)
	})

	s.Run("due task at exactly the deadline is claimed", func() {
		s.addTask(3, ActionDeleteOrder, s.base)
		claimed, err := s.store.ClaimDue(s.ctx, s.base, claimBatchSize)
		s.Require().NoError(err)
		s.Require().Len(claimed, 1)
	})

	s.Run("respects the batch limit, earliest first", func() {
		s.addTask(4, ActionDeleteOrder, s.base.Add(2*time.Hour))
		s.addTask(5, ActionDeleteOrder, s.base.Add(time.Hour))

		claimed, err := s.store.ClaimDue(s.ctx, s.base.Add(3*time.Hour), 1)
		s.Require().NoError(err)
		s.Require().Len(claimed, 1)
		s.Equal(int64(5), claimed[0].OrderID)
	})
}

func (s *TaskStoreSuite) TestCancelForOrder() {
	s.addTask(1, ActionDeleteOrder, s.base.Add(8*time.Hour))
	s.addTask(1, ActionClearSalesReport, s.base.Add(5*time.Hour))
	s.addTask(2, ActionDeleteOrder, s.base.Add(8*time.Hour))

	s.Require().NoError(s.store.CancelForOrder(s.ctx, 1))

	pending, err := s.store.PendingForOrder(s.ctx, 1)
	s.Require().NoError(err)
	s.Empty(pending)

	pending, err = s.store.PendingForOrder(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(pending, 1)
}
