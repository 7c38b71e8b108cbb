package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Quote metrics
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_total",
			Help: "Total number of quotes computed",
		},
		[]string{"type", "tenant"},
	)

	QuoteAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quote_amount",
			Help:    "Quoted amount distribution",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"type"},
	)

	// Rule matching metrics
	RuleMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rule_matches_total",
			Help: "Total number of rule match attempts",
		},
		[]string{"kind", "outcome"},
	)

	// Cache metrics
	ConfigCacheHit = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "config_cache_hit_total",
			Help: "Total number of tenant config cache hits",
		},
	)

	ConfigCacheMiss = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "config_cache_miss_total",
			Help: "Total number of tenant config cache misses",
		},
	)

	// Database metrics
	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Event metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic", "status"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors",
		},
		[]string{"type", "component"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordQuote records a computed quote
func RecordQuote(quoteType, tenant string, amount float64) {
	QuotesTotal.WithLabelValues(quoteType, tenant).Inc()
	QuoteAmount.WithLabelValues(quoteType).Observe(amount)
}

// RecordRuleMatch records a rule match attempt
func RecordRuleMatch(kind string, matched bool) {
	outcome := "default"
	if matched {
		outcome = "matched"
	}
	RuleMatchesTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordConfigCacheHit records a tenant config cache hit
func RecordConfigCacheHit() {
	ConfigCacheHit.Inc()
}

// RecordConfigCacheMiss records a tenant config cache miss
func RecordConfigCacheMiss() {
	ConfigCacheMiss.Inc()
}

// RecordDatabaseQuery records a database query
func RecordDatabaseQuery(operation string, duration time.Duration) {
	DatabaseQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEventPublished records an event publish attempt
func RecordEventPublished(topic, status string) {
	EventsPublished.WithLabelValues(topic, status).Inc()
}

// RecordError records an error
func RecordError(errorType, component string) {
	ErrorsTotal.WithLabelValues(errorType, component).Inc()
}
