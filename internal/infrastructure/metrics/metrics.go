// Package metrics defines and registers all custom Prometheus metrics for the
// crew scheduler. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crew"

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts individual notification attempts.
// Labels:
//   - flow: "assigned" or "updated"
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification attempts, by flow and result.",
	},
	[]string{"flow", "result"},
)

// DispatchDuration measures how long a whole fan-out takes to settle.
// Label:
//   - flow: "assigned" or "updated"
var DispatchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dispatch_duration_seconds",
		Help:      "Duration of a notification fan-out from first send to last settled attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"flow"},
)

// NotificationsSkippedTotal counts flows that did not dispatch.
// Label:
//   - reason: "unavailable", "no_recipients" or "duplicate"
var NotificationsSkippedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_skipped_total",
		Help:      "Total number of notification flows that skipped dispatch, by reason.",
	},
	[]string{"reason"},
)

// ── Assignment metrics ────────────────────────────────────────────────────────

// AssignmentsAddedTotal counts workers newly linked to a shift.
var AssignmentsAddedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_added_total",
		Help:      "Total number of workers newly assigned to shifts.",
	},
)

// ── Provisioning metrics ──────────────────────────────────────────────────────

// ProvisioningTotal counts provisioning calls by outcome.
// Label:
//   - outcome: "created", "reactivated", "identity_failed", "profile_failed", "rolled_back", "rollback_failed"
var ProvisioningTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provisioning_total",
		Help:      "Total number of worker provisioning calls, by outcome.",
	},
	[]string{"outcome"},
)

// PasswordDegradedTotal counts generated passwords that had to fall back to a
// non-cryptographic random source. Any non-zero value should page someone.
var PasswordDegradedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_degraded_total",
		Help:      "Total number of generated passwords drawn from a non-cryptographic source.",
	},
)
