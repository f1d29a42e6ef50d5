package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "enterprise_ledger"

var (
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"method", "path", "status"},
	)
	gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "gate_decisions_total", Help: "Enterprise gate decisions by outcome"},
		[]string{"decision"},
	)
	mirrorWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "mirror_writes_total", Help: "Personal-ledger mirror writes by backend and outcome"},
		[]string{"backend", "outcome"},
	)
	identityBridge = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "identity_bridge_total", Help: "Local to cloud identity resolutions by outcome"},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(reqDuration, reqTotal, gateDecisions, mirrorWrites, identityBridge)
}

// GinMiddleware records request count and latency, labelled by route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		reqDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		reqTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// ObserveGateDecision counts one enterprise gate outcome.
func ObserveGateDecision(decision string) {
	gateDecisions.WithLabelValues(decision).Inc()
}

// ObserveMirrorWrite counts one mirror attempt.
func ObserveMirrorWrite(backend, outcome string) {
	mirrorWrites.WithLabelValues(backend, outcome).Inc()
}

// ObserveIdentityBridge counts one identity resolution.
func ObserveIdentityBridge(outcome string) {
	identityBridge.WithLabelValues(outcome).Inc()
}
