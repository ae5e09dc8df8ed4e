package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practicetime_http_requests_total",
			Help: "Total number of HTTP requests served by the admin API",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Admin traffic is dominated by store round trips; the upload and
	// bulk-import endpoints are the slow tail, hence buckets past 5s.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "practicetime_http_request_duration_seconds",
			Help:    "Duration of admin API requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// AllocationRaces counts question id reservations lost to a concurrent
	// upload. A sustained rate here means the retry budget needs raising.
	AllocationRaces = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "practicetime_question_id_allocation_races_total",
			Help: "Question id reservations lost to a concurrent writer",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AllocationRaces)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
