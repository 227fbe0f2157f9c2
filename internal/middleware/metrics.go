package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	messagesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_messages_processed_total",
			Help: "Total inbound chat messages run through the command pipeline",
		},
		[]string{"intent", "outcome"},
	)

	messagesDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_messages_dropped_total",
			Help: "Messages dropped before parsing (group chats, store failures)",
		},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveMessage records one completed pipeline run. outcome is "applied"
// when a mutation was written, "replied" when only a reply was produced.
func ObserveMessage(intent string, mutated bool) {
	outcome := "replied"
	if mutated {
		outcome = "applied"
	}
	messagesProcessedTotal.WithLabelValues(intent, outcome).Inc()
}

// ObserveDrop records a message that never reached the executor.
func ObserveDrop() {
	messagesDroppedTotal.Inc()
}

func Metrics(reg *prometheus.Registry) gin.HandlerFunc {
	reg.MustRegister(messagesProcessedTotal, messagesDroppedTotal, httpRequestDuration)

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
