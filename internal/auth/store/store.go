package store

import (
	"context"

	"posadmin/internal/auth/models"
)

// AdminStore looks up operator accounts. Implementations return
// sentinel.ErrNotFound for unknown usernames; the service is responsible for
// collapsing that into the generic credentials error.
type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// LoginEventStore persists the sign-in audit trail. Recording is best-effort;
// a failure must never block a login.
type LoginEventStore interface {
	Record(ctx context.Context, event *models.LoginEvent) error
	ListRecent(ctx context.Context, limit int) ([]*models.LoginEvent, error)
}
