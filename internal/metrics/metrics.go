package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelRoute, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      "HTTP request latency in seconds",
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelRoute},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      "Current number of HTTP requests being served",
		},
	)
)

// Account metrics
var (
	Registrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRegistrations,
			Help:      "Total number of accounts registered",
		},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLogins,
			Help:      "Total number of login attempts",
		},
		[]string{LabelResult},
	)
)

// Farm metrics
var (
	HabitsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHabitsAdded,
			Help:      "Total number of habits created",
		},
	)

	CheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCheckIns,
			Help:      "Total number of habit check-ins",
		},
	)

	CropsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCropsPlanted,
			Help:      "Total number of crops planted",
		},
		[]string{LabelCrop},
	)

	CropsMatured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCropsMatured,
			Help:      "Total number of crops that reached maturity",
		},
		[]string{LabelCrop},
	)

	CropsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCropsHarvested,
			Help:      "Total number of crops harvested",
		},
		[]string{LabelCrop},
	)

	CropsAbandoned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameCropsAbandoned,
			Help:      "Total number of crops abandoned",
		},
		[]string{LabelCrop},
	)

	ResearchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameResearchAttempts,
			Help:      "Total number of recipe research attempts by outcome",
		},
		[]string{LabelRecipe, LabelOutcome},
	)
)

// Storage metrics
var (
	RevisionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRevisionConflicts,
			Help:      "Total number of saves rejected due to a stale revision",
		},
	)

	UserCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameUserCacheLookups,
			Help:      "User record cache lookups by result",
		},
		[]string{LabelResult},
	)
)

// ObserveCacheLookup records a user cache hit or miss
func ObserveCacheLookup(hit bool) {
	if hit {
		UserCacheLookups.WithLabelValues(ResultHit).Inc()
		return
	}
	UserCacheLookups.WithLabelValues(ResultMiss).Inc()
}
