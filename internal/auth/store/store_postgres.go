package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"posadmin/internal/auth/models"
	"posadmin/pkg/platform/sentinel"
)

// PostgresAdminStore reads operator accounts from PostgreSQL.
// Pure I/O; credential policy lives in the auth service.
type PostgresAdminStore struct {
	db *sql.DB
}

func NewPostgresAdminStore(db *sql.DB) *PostgresAdminStore {
	return &PostgresAdminStore{db: db}
}

func (s *PostgresAdminStore) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = $1
	`
	var admin models.Admin
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find admin by username: %w", err)
	}
	return &admin, nil
}

// PostgresLoginEventStore persists the sign-in audit trail.
type PostgresLoginEventStore struct {
	db *sql.DB
}

func NewPostgresLoginEventStore(db *sql.DB) *PostgresLoginEventStore {
	return &PostgresLoginEventStore{db: db}
}

func (s *PostgresLoginEventStore) Record(ctx context.Context, event *models.LoginEvent) error {
	query := `
		INSERT INTO login_events (id, admin_id, username, device, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.AdminID,
		event.Username,
		event.Device,
		event.IPAddress,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record login event: %w", err)
	}
	return nil
}

func (s *PostgresLoginEventStore) ListRecent(ctx context.Context, limit int) ([]*models.LoginEvent, error) {
	query := `
		SELECT id, admin_id, username, device, ip_address, created_at
		FROM login_events
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list login events: %w", err)
	}
	defer rows.Close()

	var events []*models.LoginEvent
	for rows.Next() {
		var e models.LoginEvent
		if err := rows.Scan(&e.ID, &e.AdminID, &e.Username, &e.Device, &e.IPAddress, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan login event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
