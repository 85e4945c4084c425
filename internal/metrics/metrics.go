package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contest"

// Metrics owns the registry exposed on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	recomputes    *prometheus.CounterVec
	rankChanges   prometheus.Counter
	rankConflicts prometheus.Counter
	recomputeTime prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "recomputes_total",
			Help:      "Leaderboard recomputations by outcome.",
		}, []string{"outcome"}),
		rankChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "rank_changes_total",
			Help:      "Participations whose rank changed.",
		}),
		rankConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "rank_conflicts_total",
			Help:      "Rank writes rejected by a concurrent recomputation.",
		}),
		recomputeTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "recompute_duration_seconds",
			Help:      "Time spent ranking a contest, retries included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.recomputes, m.rankChanges, m.rankConflicts, m.recomputeTime)

	return m
}

func (m *Metrics) ObserveRecompute(changed, conflicts int, elapsed time.Duration, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case changed == 0:
		outcome = "unchanged"
	}

	m.recomputes.WithLabelValues(outcome).Inc()
	m.rankChanges.Add(float64(changed))
	m.rankConflicts.Add(float64(conflicts))
	m.recomputeTime.Observe(elapsed.Seconds())
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		m.latency.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
