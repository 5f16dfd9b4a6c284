// Package metrics defines the service's Prometheus metrics. It is the
// single source of truth for metric names, labels, and help strings;
// promauto registers everything with the default registry at package
// load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital_admin"

// LoginsTotal counts login attempts by outcome: "success", "rejected"
// (credentials), or "conflict" (login already in progress).
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsRestoredTotal counts sessions rebuilt from snapshots on
// first touch.
var SessionsRestoredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_restored_total",
		Help:      "Total number of sessions restored from persisted snapshots.",
	},
)

// BranchSelectionsTotal counts branch switches by outcome: "applied"
// or "rejected" (foreign branch).
var BranchSelectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "branch_selections_total",
		Help:      "Total number of branch selection requests, by outcome.",
	},
	[]string{"outcome"},
)

// ThemeUpdatesTotal counts tenant theme updates.
var ThemeUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "theme_updates_total",
		Help:      "Total number of tenant theme updates.",
	},
)

// SessionStoresResident tracks the number of session stores currently
// held in memory by the manager.
var SessionStoresResident = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_stores_resident",
		Help:      "Number of session stores currently resident in memory.",
	},
)

// HTTPRequestDuration measures request latency per route and status.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by method, route pattern, and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
