// Package auth implements the session gate: password verification, the
// shared-PIN second factor, and session state derivation. All state lives in
// the signed token; the server keeps no session records.
package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"posadmin/internal/auth/device"
	"posadmin/internal/auth/models"
	"posadmin/internal/auth/store"
	"posadmin/internal/token"
	dErrors "posadmin/pkg/domain-errors"
)

// SessionState is the server-derived authentication state of a request.
type SessionState int

const (
	StateAbsent SessionState = iota
	StatePasswordVerified
	StateFullyAuthenticated
)

// dummyHash keeps bcrypt cost constant when the username does not exist, so
// "no such user" and "wrong password" are indistinguishable from outside.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type Service struct {
	admins store.AdminStore
	events store.LoginEventStore
	tokens *token.Service
	pin    string
	logger *slog.Logger
}

func NewService(admins store.AdminStore, events store.LoginEventStore, tokens *token.Service, pin string, logger *slog.Logger) *Service {
	return &Service{
		admins: admins,
		events: events,
		tokens: tokens,
		pin:    pin,
		logger: logger,
	}
}

// SignIn verifies credentials and issues a password-verified session token.
// Every failure path returns the same generic error.
func (s *Service) SignIn(ctx context.Context, username, password, userAgent, ip string) (string, *models.Admin, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")

	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		// Burn a comparison anyway so response timing does not reveal
		// whether the username exists.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, invalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, invalid
	}

	raw, err := s.tokens.Issue(admin.ID, admin.Username, false)
	if err != nil {
		return "", nil, dErrors.New(dErrors.CodeInternal, "failed to issue session")
	}

	s.recordLogin(ctx, admin, userAgent, ip)

	return raw, admin, nil
}

// ValidatePIN checks the shared second factor and upgrades the session by
// reissuing the token with the verified-PIN claim set. The caller must hold
// a password-verified session already.
func (s *Service) ValidatePIN(ctx context.Context, adminID, username, pin string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.pin)) != 1 {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid pin")
	}

	id, err := uuid.Parse(adminID)
	if err != nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid session")
	}

	raw, err := s.tokens.Issue(id, username, true)
	if err != nil {
		return "", dErrors.New(dErrors.CodeInternal, "failed to issue session")
	}
	return raw, nil
}

// SessionState derives the authentication state from a raw token. A missing,
// malformed, or expired token is simply Absent; this endpoint never errors.
func (s *Service) SessionState(rawToken string) SessionState {
	if rawToken == "" {
		return StateAbsent
	}
	claims, err := s.tokens.Validate(rawToken)
	if err != nil {
		return StateAbsent
	}
	if claims.PINVerified {
		return StateFullyAuthenticated
	}
	return StatePasswordVerified
}

// RecentLogins exposes the sign-in audit trail.
func (s *Service) RecentLogins(ctx context.Context, limit int) ([]*models.LoginEvent, error) {
	events, err := s.events.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list login events")
	}
	return events, nil
}

func (s *Service) recordLogin(ctx context.Context, admin *models.Admin, userAgent, ip string) {
	event := &models.LoginEvent{
		ID:        uuid.New(),
		AdminID:   admin.ID,
		Username:  admin.Username,
		Device:    device.ParseUserAgent(userAgent),
		IPAddress: ip,
		CreatedAt: time.Now(),
	}
	if err := s.events.Record(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to record login event",
			"error", err,
			"admin_id", admin.ID.String(),
		)
	}
}
