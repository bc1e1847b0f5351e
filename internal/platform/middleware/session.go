package middleware

import (
	"context"
	"log/slog"
	"net/http"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// SessionClaims are the verified facts extracted from a session token. Both
// verification bits are signed claims; nothing is taken from client state.
type SessionClaims struct {
	AdminID     string
	Username    string
	PINVerified bool
}

// SessionValidator validates a raw session token.
type SessionValidator interface {
	ValidateSession(tokenString string) (*SessionClaims, error)
}

type contextKeyAdminID struct{}
type contextKeyUsername struct{}

var (
	ContextKeyAdminID  = contextKeyAdminID{}
	ContextKeyUsername = contextKeyUsername{}
)

// GetAdminID retrieves the authenticated admin ID from the context.
func GetAdminID(ctx context.Context) string {
	id, ok := ctx.Value(ContextKeyAdminID).(string)
	if !ok {
		return ""
	}
	return id
}

// GetUsername retrieves the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	name, ok := ctx.Value(ContextKeyUsername).(string)
	if !ok {
		return ""
	}
	return name
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}

// RequireSession gates routes on session state. With requirePIN true only
// fully authenticated sessions pass; otherwise a password-verified session is
// enough (the PIN entry route itself).
func RequireSession(validator SessionValidator, logger *slog.Logger, requirePIN bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				logger.WarnContext(ctx, "unauthorized access - missing session cookie",
					"path", r.URL.Path,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w)
				return
			}

			claims, err := validator.ValidateSession(cookie.Value)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid session token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w)
				return
			}

			if requirePIN && !claims.PINVerified {
				logger.WarnContext(ctx, "forbidden access - PIN not verified",
					"path", r.URL.Path,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w)
				return
			}

			ctx = context.WithValue(ctx, ContextKeyAdminID, claims.AdminID)
			ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
