// Package metrics defines and registers all custom Prometheus metrics for the
// user service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// through promauto; the /metrics route exposes them alongside echoprometheus'
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "users"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts accounts created successfully.
// Label:
//   - role: the resolved role name (e.g. "UTILISATEUR")
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// UsersUpdatedTotal counts successful partial updates.
var UsersUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updated_total",
		Help:      "Total number of user accounts updated.",
	},
)

// UsersDeletedTotal counts accounts removed.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deleted_total",
		Help:      "Total number of user accounts deleted.",
	},
)

// ── API metrics ───────────────────────────────────────────────────────────────

// APIErrorsTotal counts error responses rendered by the HTTP error handler.
// Label:
//   - code: taxonomy code (e.g. "ERR_EMAIL_EXISTS", "ERR_INTERNAL")
var APIErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_errors_total",
		Help:      "Total number of API error responses, by error code.",
	},
	[]string{"code"},
)

// RateLimitedTotal counts write requests rejected by the rate limiter.
// Label:
//   - route: the matched route path (e.g. "/api/users/:id")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"route"},
)
