// Package metrics provides Prometheus observability metrics for the
// staffing recommendation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// RecommendationsServedTotal counts weekly recommendation computations.
var RecommendationsServedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "engine",
	Name:      "recommendations_served_total",
	Help:      "Total number of weekly staffing recommendations computed",
})

// SimulatedDaysTotal counts days where zero synthetic traffic replaced a
// failed upstream fetch. High values indicate traffic-service trouble.
var SimulatedDaysTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "engine",
	Name:      "simulated_days_total",
	Help:      "Total number of days substituted with simulated zero traffic",
})

// TrafficFetchFailuresTotal counts upstream traffic fetch failures.
var TrafficFetchFailuresTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "traffic",
	Name:      "fetch_failures_total",
	Help:      "Total failed or timed-out traffic fetches",
})

// TrafficFetchDurationSeconds tracks upstream traffic fetch latency.
var TrafficFetchDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "traffic",
	Name:      "fetch_duration_seconds",
	Help:      "Time taken to fetch one day of traffic from the upstream service",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
})

// TrafficCacheHitsTotal counts traffic days served from the Redis cache.
var TrafficCacheHitsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "traffic",
	Name:      "cache_hits_total",
	Help:      "Traffic day lookups answered by the cache",
})

// BulkApplyStoresTotal counts per-store bulk apply outcomes.
var BulkApplyStoresTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "bulk",
	Name:      "apply_stores_total",
	Help:      "Per-store bulk configuration apply outcomes",
}, []string{"outcome"})

// BulkApplyDurationSeconds tracks whole bulk apply run durations.
var BulkApplyDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "bulk",
	Name:      "apply_duration_seconds",
	Help:      "Time taken to run a full bulk configuration apply",
	Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
})

// SyncRunsTotal counts traffic sync runs by outcome.
var SyncRunsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sync",
	Name:      "runs_total",
	Help:      "Traffic sync runs by outcome (completed, background, failed)",
}, []string{"outcome"})
