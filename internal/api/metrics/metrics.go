// Package metrics defines the custom Prometheus metrics of the quoting API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry on package init (promauto)
// and exposed on /metrics next to the HTTP metrics of echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quoting"

// ── Webhook metrics ───────────────────────────────────────────────────────────

// WebhookUpdatesTotal counts board webhook deliveries.
// Label:
//   - result: "updated", "noop", "duplicate", "not_found", "invalid", "unauthorized" or "error"
var WebhookUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_updates_total",
		Help:      "Total number of board webhook deliveries, by result.",
	},
	[]string{"result"},
)

// ── Session and login metrics ─────────────────────────────────────────────────

// SessionReconcileTotal counts reconciliation outcomes.
// Label:
//   - state: "unauthenticated", "synced", "repaired_from_store" or "degraded_fallback"
var SessionReconcileTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_reconcile_total",
		Help:      "Total number of session reconciliations, by resulting state.",
	},
	[]string{"state"},
)

// LoginAttemptsTotal counts credential logins.
// Label:
//   - outcome: "success", "migrated", "invalid_credentials", "email_not_verified",
//     "migration_failed", "retry_failed" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of credential login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Quote metrics ─────────────────────────────────────────────────────────────

// QuotesCreatedTotal counts newly created quotes.
// Label:
//   - project_type: "PROYECTO", "STAFFING" or "SOSTENIMIENTO"
var QuotesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_created_total",
		Help:      "Total number of quotes created, by project type.",
	},
	[]string{"project_type"},
)

// QuoteEstimatedCost observes the computed total of new quotes.
var QuoteEstimatedCost = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "quote_estimated_cost",
		Help:      "Estimated cost of newly created quotes.",
		Buckets:   prometheus.ExponentialBuckets(1000, 2, 12),
	},
)

// ── Board sync metrics ────────────────────────────────────────────────────────

// BoardSyncTotal counts board status pushes.
// Label:
//   - outcome: "synced", "failed" or "dropped"
var BoardSyncTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "board_sync_total",
		Help:      "Total number of board status pushes, by outcome.",
	},
	[]string{"outcome"},
)

// ObserveBoardSync is a queue.Dispatcher OnResult hook.
func ObserveBoardSync(outcome string) {
	BoardSyncTotal.WithLabelValues(outcome).Inc()
}
