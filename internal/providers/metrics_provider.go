package providers

import (
	"time"

	"fgd/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncFetchedGames(count int)
	IncRatingFailures(source string)
	ObserveRefreshDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
	SetPartitionSize(partition string, count int)
	AddBackfilledRatings(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	fetchedGames        prometheus.Counter
	ratingFailures      *prometheus.CounterVec
	refreshDuration     prometheus.Histogram
	persistenceDuration prometheus.Histogram
	partitionSize       *prometheus.GaugeVec
	backfilledRatings   prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncFetchedGames(count int) {
	m.fetchedGames.Add(float64(count))
}

func (m *MetricsProvider) IncRatingFailures(source string) {
	m.ratingFailures.WithLabelValues(source).Inc()
}

func (m *MetricsProvider) ObserveRefreshDuration(duration time.Duration) {
	m.refreshDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetPartitionSize(partition string, count int) {
	m.partitionSize.WithLabelValues(partition).Set(float64(count))
}

func (m *MetricsProvider) AddBackfilledRatings(count int) {
	m.backfilledRatings.Add(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fgd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fgd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		fetchedGames: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgd_fetched_games_total",
			Help: "Total number of games returned by the store fetcher",
		}),

		ratingFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fgd_rating_source_failures_total",
			Help: "Total number of failed rating source lookups",
		}, []string{"source"}),

		refreshDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fgd_refresh_duration_seconds",
			Help:    "Duration of full refresh runs in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fgd_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		partitionSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fgd_partition_size",
			Help: "Number of games per snapshot partition",
		}, []string{"partition"}),

		backfilledRatings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fgd_backfilled_ratings_total",
			Help: "Total number of past records patched with a rating",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncFetchedGames(_ int)                            {}
func (n *noopMetrics) IncRatingFailures(_ string)                       {}
func (n *noopMetrics) ObserveRefreshDuration(_ time.Duration)           {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetPartitionSize(_ string, _ int)                 {}
func (n *noopMetrics) AddBackfilledRatings(_ int)                       {}
