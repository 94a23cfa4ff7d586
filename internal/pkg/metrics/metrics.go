// Package metrics defines and registers the custom Prometheus metrics for the
// catalog API. HTTP request metrics come from the echoprometheus middleware;
// this package only holds domain counters.
//
// All metrics are registered with the default registry on package init via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login outcomes.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "email_taken" or "invalid_credentials"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register/login attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts product writes.
// Labels:
//   - op: "create", "update" or "delete"
//   - result: "success", "duplicate_sku", "not_found" or "error"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of product mutations, by operation and result.",
	},
	[]string{"op", "result"},
)

// ProductCacheLookupsTotal counts read-through cache lookups on get-by-id.
// Label:
//   - result: "hit", "miss" or "error"
var ProductCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_lookups_total",
		Help:      "Total number of product cache lookups, labelled by result.",
	},
	[]string{"result"},
)
