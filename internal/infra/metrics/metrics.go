// Package metrics provides Prometheus metrics for the storefront API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Authentication outcomes recorded by the bearer middleware and credential checks.
const (
	OutcomeSuccess        = "success"
	OutcomeMissingToken   = "missing_token"
	OutcomeInvalidToken   = "invalid_token"
	OutcomeExpiredToken   = "expired_token"
	OutcomeUnknownSubject = "unknown_subject"
	OutcomeBadCredentials = "bad_credentials"
)

var (
	// AuthenticationTotal counts bearer token checks by outcome.
	AuthenticationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authentication_total",
			Help:      "Total number of bearer token authentications",
		},
		[]string{"outcome"},
	)

	// LoginTotal counts password logins by outcome.
	LoginTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_total",
			Help:      "Total number of password logins",
		},
		[]string{"outcome"},
	)

	// AuthorizationDeniedTotal counts requests rejected by the elevated gate.
	AuthorizationDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_denied_total",
			Help:      "Total number of requests rejected for insufficient privilege",
		},
	)

	// EventsPublishedTotal counts audit events by type and status.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_events_total",
			Help:      "Total number of audit events published",
		},
		[]string{"type", "status"},
	)

	// DBOpenConnections tracks the primary pool size reported by database/sql.
	DBOpenConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_open_connections",
			Help:      "Open connections in the primary database pool",
		},
	)
)

// RecordAuthentication records a bearer token check.
func RecordAuthentication(outcome string) {
	AuthenticationTotal.WithLabelValues(outcome).Inc()
}

// RecordLogin records a password login attempt.
func RecordLogin(outcome string) {
	LoginTotal.WithLabelValues(outcome).Inc()
}

// RecordAuthorizationDenied records a 403 from the elevated gate.
func RecordAuthorizationDenied() {
	AuthorizationDeniedTotal.Inc()
}

// RecordEvent records an audit event publish.
func RecordEvent(eventType, status string) {
	EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}
