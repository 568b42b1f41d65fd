// Package metrics defines the custom Prometheus metrics of the travel planner
// API. HTTP request metrics come from echoprometheus; everything here covers
// authentication, access control and the audit trail.
//
// All collectors register with the default registry on package init via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel_planner"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts self-service registrations.
// Label:
//   - result: "created", "duplicate" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Access guard ──────────────────────────────────────────────────────────────

// GuardRejectionsTotal counts requests the access guard turned away.
// Label:
//   - reason: "missing_credential", "malformed_credential", "invalid_token",
//     "expired_token", "invalid_basic", "basic_disabled", "throttled" or
//     "forbidden"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the access guard.",
	},
	[]string{"reason"},
)

// ── Audit trail ───────────────────────────────────────────────────────────────

// AuditQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts events discarded because a worker buffer was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of auth events dropped due to a full dispatcher buffer.",
	},
)

// AuditEventsStoredTotal counts events persisted, by outcome.
// Label:
//   - result: "ok" or "error"
var AuditEventsStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_stored_total",
		Help:      "Total number of auth events handed to the audit store, by outcome.",
	},
	[]string{"result"},
)

// AuditProcessingDuration measures the time spent persisting a single event.
var AuditProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of auth event persistence from dequeue to store.",
		Buckets:   prometheus.DefBuckets,
	},
)
