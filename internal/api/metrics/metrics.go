// Package metrics defines the custom Prometheus metrics of the task console.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto; /metrics serves them next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "task_console"

// ── Remote API metrics ────────────────────────────────────────────────────────

// APIRequestsTotal counts calls to the remote task-management API.
// Labels:
//   - resource: "auth", "tasks", "users" or "roles"
//   - outcome: "ok" or the error category ("not_found", "validation",
//     "unauthorized", "server", "network", "canceled")
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of remote API calls, by resource and outcome.",
	},
	[]string{"resource", "outcome"},
)

// APIRequestDuration measures remote API latency.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of remote API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDecisionsTotal counts route gate decisions.
// Labels:
//   - page: page id of the requested route
//   - decision: "allow", "deny", "checking" or "fallback"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of route access decisions, by page and decision.",
	},
	[]string{"page", "decision"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// InflightRejectedTotal counts duplicate submits refused while the first
// submit was still running.
var InflightRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inflight_rejected_total",
		Help:      "Total number of mutating submits rejected because the same action was in flight.",
	},
)

// ── Logout confirmation metrics ───────────────────────────────────────────────

// LogoutConfirmationsTotal counts remote logout confirmations.
// Label:
//   - result: "sent", "failed" or "dropped"
var LogoutConfirmationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logout_confirmations_total",
		Help:      "Total number of remote logout confirmations, by result.",
	},
	[]string{"result"},
)

// LogoutQueueDepth tracks pending confirmations per worker channel.
var LogoutQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "logout_queue_depth",
		Help:      "Current number of logout confirmations pending in each worker channel.",
	},
	[]string{"worker_id"},
)
