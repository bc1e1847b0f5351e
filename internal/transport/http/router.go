// Package httptransport assembles the HTTP surface: middleware chain, route
// registration, and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"posadmin/internal/platform/metrics"
	"posadmin/internal/platform/middleware"
	"posadmin/pkg/platform/httputil"
)

// Registrar is implemented by each domain handler package.
type Registrar interface {
	Register(r chi.Router)
}

// Pinger reports backend liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker reports cache liveness. Left nil when no cache is configured.
type HealthChecker interface {
	Health(ctx context.Context) error
}

const requestTimeout = 30 * time.Second

// Deps collects everything the router needs. Public carries handlers that
// manage their own authentication; Gated handlers are mounted behind a full
// session check (password and PIN both verified).
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Validator middleware.SessionValidator
	DB        Pinger
	Cache     HealthChecker

	Public []Registrar
	Gated  []Registrar
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", handleHealth(deps.DB, deps.Cache))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range deps.Public {
		h.Register(r)
	}

	r.Group(func(gated chi.Router) {
		gated.Use(middleware.RequireSession(deps.Validator, deps.Logger, true))
		for _, h := range deps.Gated {
			h.Register(gated)
		}
	})

	return r
}

func handleHealth(db Pinger, cache HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		if cache != nil {
			if err := cache.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
