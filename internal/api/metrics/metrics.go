// Package metrics defines and registers all custom Prometheus metrics for the
// rental API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time;
// the /metrics endpoint is wired by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

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

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "failure"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// CarsCreatedTotal counts cars added to the inventory.
var CarsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cars_created_total",
		Help:      "Total number of cars created.",
	},
)

// CarsUpdatedTotal counts partial updates applied to inventory records.
var CarsUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cars_updated_total",
		Help:      "Total number of cars updated.",
	},
)

// CarsDeletedTotal counts cars removed from the inventory.
var CarsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cars_deleted_total",
		Help:      "Total number of cars deleted.",
	},
)
