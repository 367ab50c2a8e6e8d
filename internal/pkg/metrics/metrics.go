// Package metrics defines and registers all custom Prometheus metrics for the
// dealership API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealership"

// ── Access control ───────────────────────────────────────────────────────────

// AccessDecisionsTotal counts Guard decisions.
// Labels:
//   - op: the operation name (e.g. "users.update_role")
//   - result: "allowed", "unauthenticated" or "unauthorized"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of authorization decisions, by operation and result.",
	},
	[]string{"op", "result"},
)

// ── Abuse mitigation ─────────────────────────────────────────────────────────

// PublicGateTotal counts public submission admission decisions.
// Labels:
//   - action: the public action (e.g. "leads.submit")
//   - result: "admitted", "rate_limited" or "captcha_failed"
var PublicGateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "public_gate_total",
		Help:      "Total number of public submission gate decisions.",
	},
	[]string{"action", "result"},
)

// CaptchaVerifyDuration measures the remote challenge verification call.
var CaptchaVerifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "captcha_verify_duration_seconds",
		Help:      "Duration of remote bot challenge verification calls.",
		Buckets:   prometheus.DefBuckets,
	},
)

// DuplicateSubmissionsTotal counts duplicate-submission checks.
// Label:
//   - result: "hit" (duplicate, suppressed), "miss" (new) or "error"
var DuplicateSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_submissions_total",
		Help:      "Total number of duplicate-submission checks, by result.",
	},
	[]string{"result"},
)

// ── Domain ───────────────────────────────────────────────────────────────────

// LeadsCreatedTotal counts leads captured by public forms.
// Label:
//   - source: "inquiry" or "sell_my_car"
var LeadsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_created_total",
		Help:      "Total number of leads created, by source.",
	},
	[]string{"source"},
)

// ── Notifications ────────────────────────────────────────────────────────────

// NotificationsTotal counts notification outcomes.
// Label:
//   - result: "sent", "skipped", "failed" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification emails, by outcome.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks pending notifications in each dispatcher worker channel.
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
