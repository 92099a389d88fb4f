// Package metrics defines and registers the custom Prometheus metrics
// for the journal API. It is the single source of truth for metric
// names, labels, and help strings; registration happens at import time
// via promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "journal"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts auth-gate token checks.
// Label:
//   - result: "ok", "missing", "expired", or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of session token verifications, by result.",
	},
	[]string{"result"},
)

// EntriesCreatedTotal counts new journal entries.
// Label:
//   - kind: "post" or "todo"
var EntriesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of entries created, by kind.",
	},
	[]string{"kind"},
)

// ChecksToggledTotal counts completion-flag toggles.
// Label:
//   - kind: "post" or "todo"
var ChecksToggledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checks_toggled_total",
		Help:      "Total number of completion toggles, by entry kind.",
	},
	[]string{"kind"},
)

// SearchesTotal counts post searches.
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of post content searches.",
	},
)

// ProfileUpdatesTotal counts successful profile updates.
var ProfileUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Total number of successful profile updates.",
	},
)
