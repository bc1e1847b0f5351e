//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"posadmin/internal/auth/models"
	"posadmin/pkg/platform/sentinel"
	"posadmin/pkg/testutil/containers"
)

type PostgresSuite struct {
	suite.Suite
	pg     *containers.PostgresContainer
	admins *PostgresAdminStore
	events *PostgresLoginEventStore
	ctx    context.Context
}

func (s *PostgresSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.admins = NewPostgresAdminStore(s.pg.DB)
	s.events = NewPostgresLoginEventStore(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx, "login_events", "admins"))
}

func (s *PostgresSuite) insertAdmin(username string) uuid.UUID {
	id := uuid.New()
	_, err := s.pg.DB.ExecContext(s.ctx, `
		INSERT INTO admins (id, username, password_hash)
		VALUES ($1, $2, $3)`,
		id, username, "$2a$10$hash",
	)
	s.Require().NoError(err)
	return id
}

func (s *PostgresSuite) TestFindByUsername() {
	id := s.insertAdmin("manager")

	admin, err := s.admins.FindByUsername(s.ctx, "manager")
	s.Require().NoError(err)
	s.Equal(id, admin.ID)
	s.Equal("manager", admin.Username)

	_, err = s.admins.FindByUsername(s.ctx, "ghost")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresSuite) TestRecordAndListRecent() {
	adminID := s.insertAdmin("manager")

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.events.Record(s.ctx, &models.LoginEvent{
			ID:        uuid.New(),
			AdminID:   adminID,
			Username:  "manager",
			Device:    "Chrome on Windows",
			IPAddress: "203.0.113.7",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	events, err := s.events.ListRecent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	// Newest first.
	s.True(events[0].CreatedAt.After(events[1].CreatedAt))
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}
