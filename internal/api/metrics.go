package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	reloads  *prometheus.CounterVec
	entities prometheus.Gauge
	enums    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aind", Name: "http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aind", Name: "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aind", Name: "catalog_reloads_total",
			Help: "Catalog reloads by result (ok, rejected, error).",
		}, []string{"result"}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aind", Name: "catalog_entities",
			Help: "Entity types in the current catalog.",
		}),
		enums: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aind", Name: "catalog_enums",
			Help: "Enumerations in the current catalog.",
		}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration, m.reloads, m.entities, m.enums} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
