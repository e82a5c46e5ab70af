// Package metrics defines the prometheus collectors for the pipeline. A
// single Metrics value is constructed at startup and injected through the
// stage constructors; observability is required, so constructors reject a
// nil Metrics rather than degrading silently.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every pipeline collector.
type Metrics struct {
	// Validator.
	ValidationsTotal    *prometheus.CounterVec // outcome: complete|incomplete|error
	ClarificationsTotal prometheus.Counter
	QuestionsByLanguage *prometheus.CounterVec

	// Planner.
	PlansTotal prometheus.Counter
	PlanCalls  prometheus.Histogram

	// Orchestrator.
	APICallsTotal      prometheus.Counter
	APICallFailures    prometheus.Counter
	APICallDuration    prometheus.Histogram
	APIRetriesTotal    prometheus.Counter
	BreakerTransitions *prometheus.CounterVec // from, to

	// Cache.
	CacheHits   *prometheus.CounterVec // endpoint
	CacheMisses *prometheus.CounterVec // endpoint
	CacheSets   *prometheus.CounterVec // endpoint
	CacheTTL    prometheus.Histogram
}

// New registers all collectors with reg and returns the bundle. The hit-rate
// gauge derives from the hit/miss counters via a GaugeFunc fed by cache
// counters; callers that need it should use RegisterHitRate.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lucide_validation_total",
			Help: "Question validations by outcome.",
		}, []string{"outcome"}),
		ClarificationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lucide_clarifications_total",
			Help: "Clarification requests returned to callers.",
		}),
		QuestionsByLanguage: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lucide_questions_by_language_total",
			Help: "Questions processed by detected language.",
		}, []string{"language"}),

		PlansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lucide_plans_total",
			Help: "Execution plans generated.",
		}),
		PlanCalls: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lucide_plan_calls",
			Help:    "Number of upstream calls per generated plan.",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),

		APICallsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lucide_api_calls_total",
			Help: "Upstream API calls executed.",
		}),
		APICallFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "lucide_api_call_failures_total",
			Help: "Upstream API calls that failed after exhausting retries.",
		}),
		APICallDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lucide_api_call_duration_seconds",
			Help:    "Per-call wall time including retries.",
			Buckets: prometheus.DefBuckets,
		}),
		APIRetriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "lucide_api_retries_total",
			Help: "Retry attempts against the upstream API.",
		}),
		BreakerTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lucide_breaker_transitions_total",
			Help: "Circuit breaker state transitions.",
		}, []string{"from", "to"}),

		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lucide_cache_hits_total",
			Help: "Cache hits by endpoint.",
		}, []string{"endpoint"}),
		CacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lucide_cache_misses_total",
			Help: "Cache misses by endpoint.",
		}, []string{"endpoint"}),
		CacheSets: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lucide_cache_sets_total",
			Help: "Cache writes by endpoint.",
		}, []string{"endpoint"}),
		CacheTTL: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lucide_cache_ttl_seconds",
			Help:    "Effective TTLs applied on cache writes (no-expiry writes excluded).",
			Buckets: []float64{30, 300, 600, 3600, 86400},
		}),
	}
}

// RegisterHitRate registers a derived hit-rate gauge computed by the given
// function (hits / (hits+misses) over the cache's own counters).
func RegisterHitRate(reg prometheus.Registerer, fn func() float64) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "lucide_cache_hit_rate",
		Help: "Observed cache hit rate.",
	}, fn))
}

// NewForTesting returns a Metrics bundle on a private registry, for tests
// that need a non-nil Metrics without global registration conflicts.
func NewForTesting() *Metrics {
	return New(prometheus.NewRegistry())
}
