package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "screenaware"

// Metrics groups every collector the service exports. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	predictionsTotal  *prometheus.CounterVec
	scorerDuration    prometheus.Histogram
	scorerErrors      prometheus.Counter
	cbState           *prometheus.GaugeVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	eventsTotal       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		predictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Scores computed by the public scoring endpoints.",
		}, []string{"endpoint"}),
		scorerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scorer_http_duration_seconds",
			Help:      "Histogram of remote scorer request durations.",
			Buckets:   prometheus.DefBuckets,
		}),
		scorerErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scorer_http_errors_total",
			Help:      "Total remote scorer failures, breaker rejections included.",
		}),
		cbState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cb_state",
			Help:      "Circuit breaker state gauge (0 closed, 1 half, 2 open).",
		}, []string{"target"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total cache misses observed.",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Data point events handed to the broker by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.predictionsTotal,
		m.scorerDuration,
		m.scorerErrors,
		m.cbState,
		m.cacheHits,
		m.cacheMisses,
		m.eventsTotal,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GinMiddleware records count and latency per matched route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Prediction(endpoint string) {
	if m == nil {
		return
	}
	m.predictionsTotal.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) ScorerRequest(duration time.Duration, success bool) {
	if m == nil {
		return
	}
	m.scorerDuration.Observe(duration.Seconds())
	if !success {
		m.scorerErrors.Inc()
	}
}

func (m *Metrics) SetCircuitBreakerState(target string, state float64) {
	if m == nil {
		return
	}
	m.cbState.WithLabelValues(target).Set(state)
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}

func (m *Metrics) EventPublished(success bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !success {
		outcome = "error"
	}
	m.eventsTotal.WithLabelValues(outcome).Inc()
}
