package providers

import (
	"fragments/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncGamesStarted()
	IncWordsSubmitted(valid bool)
	IncBoardWrites()
	IncStoreHits()
	IncStoreMisses()
	ObserveSnapshotDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	gamesStarted     prometheus.Counter
	wordsSubmitted   *prometheus.CounterVec
	boardWrites      prometheus.Counter
	storeHits        prometheus.Counter
	storeMisses      prometheus.Counter
	snapshotDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncGamesStarted() {
	m.gamesStarted.Inc()
}

func (m *MetricsProvider) IncWordsSubmitted(valid bool) {
	if valid {
		m.wordsSubmitted.WithLabelValues("valid").Inc()
	} else {
		m.wordsSubmitted.WithLabelValues("invalid").Inc()
	}
}

func (m *MetricsProvider) IncBoardWrites() {
	m.boardWrites.Inc()
}

func (m *MetricsProvider) IncStoreHits() {
	m.storeHits.Inc()
}

func (m *MetricsProvider) IncStoreMisses() {
	m.storeMisses.Inc()
}

func (m *MetricsProvider) ObserveSnapshotDuration(duration time.Duration) {
	m.snapshotDuration.Observe(duration.Seconds())
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
			Name: "fragments_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fragments_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		gamesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fragments_games_started_total",
			Help: "Total number of game sessions started",
		}),

		wordsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fragments_words_submitted_total",
			Help: "Total number of word submissions by validity",
		}, []string{"result"}),

		boardWrites: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fragments_leaderboard_writes_total",
			Help: "Total number of leaderboard updates",
		}),

		storeHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fragments_store_hits_total",
			Help: "Total number of store reads that found a value",
		}),

		storeMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fragments_store_misses_total",
			Help: "Total number of store reads that found nothing",
		}),

		snapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fragments_snapshot_duration_seconds",
			Help:    "Duration of store snapshot operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncGamesStarted()                                 {}
func (n *noopMetrics) IncWordsSubmitted(_ bool)                         {}
func (n *noopMetrics) IncBoardWrites()                                  {}
func (n *noopMetrics) IncStoreHits()                                    {}
func (n *noopMetrics) IncStoreMisses()                                  {}
func (n *noopMetrics) ObserveSnapshotDuration(_ time.Duration)          {}
