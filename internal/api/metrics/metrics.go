// Package metrics defines and registers all custom Prometheus metrics for the
// identity API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// init via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts. Failures are not broken down further:
// the cause of an authentication failure is deliberately opaque, in metrics
// as well as in responses.
// Label:
//   - result: "ok" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RoleAssignmentsTotal counts role-assignment attempts.
// Label:
//   - result: "ok" or "error"
var RoleAssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_assignments_total",
		Help:      "Total number of role assignment attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDenialsTotal counts requests rejected by the RBAC middleware.
// Label:
//   - role: the caller's role at denial time ("" when absent)
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of requests denied by role-based access control.",
	},
	[]string{"role"},
)
