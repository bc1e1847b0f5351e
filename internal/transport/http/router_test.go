package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"posadmin/internal/platform/metrics"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeHealthChecker struct{ err error }

func (f fakeHealthChecker) Health(context.Context) error { return f.err }

func newTestRouter(db Pinger, cache HealthChecker) http.Handler {
	return NewRouter(Deps{
		Logger:  slog.New(slog.DiscardHandler),
		Metrics: metrics.NewWith(prometheus.NewRegistry()),
		DB:      db,
		Cache:   cache,
	})
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		cache      HealthChecker
		wantStatus int
	}{
		{"database reachable, no cache configured", fakePinger{}, nil, http.StatusOK},
		{"database and cache reachable", fakePinger{}, fakeHealthChecker{}, http.StatusOK},
		{"database down", fakePinger{err: errors.New("dial tcp: refused")}, nil, http.StatusServiceUnavailable},
		{"cache down", fakePinger{}, fakeHealthChecker{err: errors.New("redis: closed")}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.db, tt.cache)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
			} else {
				assert.JSONEq(t, `{"status":"unavailable"}`, rr.Body.String())
			}
		})
	}
}
