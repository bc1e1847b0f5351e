//go:build integration

package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"posadmin/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *PostgresStore
	ctx   context.Context
	base  time.Time
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgresStore(s.pg.DB)
	s.ctx = context.Background()
	s.base = time.Now().UTC().Truncate(time.Second)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx, "scheduled_tasks"))
}

func (s *PostgresStoreSuite) add(orderID int64, action Action, dueAt time.Time) uuid.UUID {
	task := &Task{
		ID:        uuid.New(),
		OrderID:   orderID,
		Action:    action,
		DueAt:     dueAt,
		CreatedAt: s.base,
	}
	s.Require().NoError(s.store.Add(s.ctx, task))
	return task.ID
}

func (s *PostgresStoreSuite) TestClaimDueRemovesClaimedTasks() {
	due := s.add(1, ActionDeleteOrder, s.base.Add(-time.Minute))
	s.add(2, ActionClearSalesReport, s.base.Add(time.Hour))

	claimed, err := s.store.ClaimDue(s.ctx, s.base, 10)
	s.Require().NoError(err)
	s.Require().Len(claimed, 1)
	s.Equal(due, claimed[0].ID)

	// Claimed tasks are gone; a second claim returns nothing.
	claimed, err = s.store.ClaimDue(s.ctx, s.base, 10)
	s.Require().NoError(err)
	s.Empty(claimed)

	pending, err := s.store.PendingForOrder(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func (s *PostgresStoreSuite) TestClaimDueHonorsLimit() {
	for i := int64(1); i <= 5; i++ {
		s.add(i, ActionDeleteOrder, s.base.Add(-time.Duration(i)*time.Minute))
	}

	claimed, err := s.store.ClaimDue(s.ctx, s.base, 3)
	s.Require().NoError(err)
	s.Len(claimed, 3)

	claimed, err = s.store.ClaimDue(s.ctx, s.base, 3)
	s.Require().NoError(err)
	s.Len(claimed, 2)
}

func (s *PostgresStoreSuite) TestCancelForOrder() {
	s.add(1, ActionDeleteOrder, s.base.Add(8*time.Hour))
	s.add(1, ActionClearSalesReport, s.base.Add(5*time.Hour))
	s.add(2, ActionDeleteOrder, s.base.Add(8*time.Hour))

	s.Require().NoError(s.store.CancelForOrder(s.ctx, 1))

	pending, err := s.store.PendingForOrder(s.ctx, 1)
	s.Require().NoError(err)
	s.Empty(pending)

	pending, err = s.store.PendingForOrder(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}
