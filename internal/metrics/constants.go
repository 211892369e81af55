package metrics

// Namespace prefixes every metric name
const Namespace = "beaverfarm"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Domain metric names
const (
	MetricNameRegistrations     = "registrations_total"
	MetricNameLogins            = "logins_total"
	MetricNameHabitsAdded       = "habits_added_total"
	MetricNameCheckIns          = "checkins_total"
	MetricNameCropsPlanted      = "crops_planted_total"
	MetricNameCropsMatured      = "crops_matured_total"
	MetricNameCropsHarvested    = "crops_harvested_total"
	MetricNameCropsAbandoned    = "crops_abandoned_total"
	MetricNameResearchAttempts  = "research_attempts_total"
	MetricNameRevisionConflicts = "revision_conflicts_total"
	MetricNameUserCacheLookups  = "user_cache_lookups_total"
)

// Label names
const (
	LabelMethod  = "method"
	LabelRoute   = "route"
	LabelStatus  = "status"
	LabelResult  = "result"
	LabelCrop    = "crop"
	LabelRecipe  = "recipe"
	LabelOutcome = "outcome"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// HTTPLatencyBuckets are histogram buckets for request latency in seconds
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
