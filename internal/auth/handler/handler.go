// Package handler exposes the session endpoints: sign-in, PIN validation,
// session introspection, and logout. The session token travels in an
// HttpOnly cookie; handlers never read authentication state from the body.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"posadmin/internal/auth"
	"posadmin/internal/auth/models"
	"posadmin/internal/platform/metrics"
	"posadmin/internal/platform/middleware"
	dErrors "posadmin/pkg/domain-errors"
	"posadmin/pkg/platform/httputil"
)

// Service is the auth gate surface the handler depends on.
type Service interface {
	SignIn(ctx context.Context, username, password, userAgent, ip string) (string, *models.Admin, error)
	ValidatePIN(ctx context.Context, adminID, username, pin string) (string, error)
	SessionState(rawToken string) auth.SessionState
	RecentLogins(ctx context.Context, limit int) ([]*models.LoginEvent, error)
}

type Handler struct {
	logger    *slog.Logger
	service   Service
	metrics   *metrics.Metrics
	validator middleware.SessionValidator
	cookieTTL time.Duration
}

func New(service Service, validator middleware.SessionValidator, m *metrics.Metrics, cookieTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		metrics:   m,
		validator: validator,
		cookieTTL: cookieTTL,
	}
}

// Register wires the session routes. Sign-in, check-auth and logout are
// public; validate-pin requires a password-verified session; the login audit
// requires full authentication.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/signin", h.handleSignIn)
	r.Get("/api/check-auth", h.handleCheckAuth)
	r.Get("/api/logout", h.handleLogout)
	r.With(middleware.RequireSession(h.validator, h.logger, false)).
		Post("/api/validate-pin", h.handleValidatePin)
	r.With(middleware.RequireSession(h.validator, h.logger, true)).
		Get("/api/login-events", h.handleLoginEvents)
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type validatePinRequest struct {
	Pin string `json:"pin"`
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if !govalidator.StringLength(req.Username, "1", "100") || !govalidator.StringLength(req.Password, "1", "200") {
		// Shape failures get the same generic answer as bad credentials so
		// the endpoint leaks nothing about stored accounts.
		h.metrics.ObserveSignin(false)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid username or password"))
		return
	}

	raw, admin, err := h.service.SignIn(ctx, req.Username, req.Password, r.UserAgent(), clientIP(r))
	if err != nil {
		h.metrics.ObserveSignin(false)
		h.logger.WarnContext(ctx, "sign-in rejected",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.ObserveSignin(true)
	http.SetCookie(w, sessionCookie(raw, h.cookieTTL))
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Signin successful",
		"username": admin.Username,
	})
}

func (h *Handler) handleValidatePin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req validatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	adminID := middleware.GetAdminID(ctx)
	username := middleware.GetUsername(ctx)

	raw, err := h.service.ValidatePIN(ctx, adminID, username, req.Pin)
	if err != nil {
		h.metrics.ObservePinValidation(false)
		h.logger.WarnContext(ctx, "pin validation rejected",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.ObservePinValidation(true)
	http.SetCookie(w, sessionCookie(raw, h.cookieTTL))
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Pin validated successfully",
	})
}

// handleCheckAuth reports session state without ever failing: an absent or
// invalid token is an answer, not an error.
func (h *Handler) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	var raw string
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		raw = cookie.Value
	}

	state := h.service.SessionState(raw)
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{
		"isAuthenticated":          state == auth.StateFullyAuthenticated,
		"usernamePasswordVerified": state != auth.StateAbsent,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, clearedSessionCookie())
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logout successful",
	})
}

func (h *Handler) handleLoginEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.RecentLogins(r.Context(), 50)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if events == nil {
		events = []*models.LoginEvent{}
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}

func sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func clearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
