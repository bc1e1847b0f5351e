// Package metrics holds the Prometheus instruments for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SigninAttempts    *prometheus.CounterVec
	PinValidations    *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
	ScheduledTasks    *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg. Tests pass a fresh registry so
// repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SigninAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "posadmin_signin_attempts_total",
			Help: "Sign-in attempts by result (success, failure)",
		}, []string{"result"}),
		PinValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "posadmin_pin_validations_total",
			Help: "Second-factor PIN validations by result",
		}, []string{"result"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "posadmin_order_status_transitions_total",
			Help: "Order status transitions by target status",
		}, []string{"status"}),
		ScheduledTasks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "posadmin_scheduled_tasks_executed_total",
			Help: "Scheduled cleanup task executions by action and result",
		}, []string{"action", "result"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "posadmin_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) ObserveSignin(success bool) {
	m.SigninAttempts.WithLabelValues(result(success)).Inc()
}

func (m *Metrics) ObservePinValidation(success bool) {
	m.PinValidations.WithLabelValues(result(success)).Inc()
}

func (m *Metrics) ObserveStatusTransition(status string) {
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveScheduledTask(action string, success bool) {
	m.ScheduledTasks.WithLabelValues(action, result(success)).Inc()
}

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
