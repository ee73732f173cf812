// Package metrics defines and registers the custom Prometheus metrics for the
// ReCon API. It is the single source of truth for metric names, labels, and
// help strings. Request-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recon"

// ── Auth metrics ──────────────────────────────────────────────────────────────

var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created through signup.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "deactivated", "invalid_credentials", "invalid_request" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
// Label:
//   - service: the requested service, e.g. "Home Remodeling"
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by service.",
	},
	[]string{"service"},
)

// ProjectStatusUpdatesTotal counts admin status updates by the status applied.
var ProjectStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_status_updates_total",
		Help:      "Total number of project status updates, by resulting status.",
	},
	[]string{"status"},
)

var ProjectsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_deleted_total",
		Help:      "Total number of projects deleted.",
	},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UserStatusTogglesTotal counts account toggles.
// Label:
//   - state: "activated" or "deactivated"
var UserStatusTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_status_toggles_total",
		Help:      "Total number of account activations and deactivations.",
	},
	[]string{"state"},
)
