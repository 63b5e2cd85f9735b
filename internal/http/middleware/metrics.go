// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation. Metrics() measures request
// counts, latencies, in-flight concurrency, and response sizes with bounded
// label cardinality (method, registered route path, status). Alongside the
// transport metrics, a few domain counters track the product-level events the
// dashboards actually alert on: bookings, bot prompts, and quota denials.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by method, route path, and status code.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// httpLat records request duration in seconds by method and route path.
	// Status is omitted to keep histogram cardinality lower.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// httpInflight gauges the number of currently processing requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// httpRespSize captures response sizes in bytes, tuned for JSON payloads.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				200, 500, 1 << 10, 2 << 10, 5 << 10,
				10 << 10, 25 << 10, 50 << 10,
				100 << 10, 250 << 10, 500 << 10,
				1 << 20,
			},
		},
		[]string{"method", "path"},
	)

	// bookingsTotal counts appointment bookings by outcome ("created",
	// "replayed", "rejected").
	bookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total appointment booking attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// botPromptsTotal counts symptom-checker prompts by outcome ("answered",
	// "declined", "rejected").
	botPromptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_prompts_total",
			Help: "Total symptom-checker prompts by outcome.",
		},
		[]string{"outcome"},
	)

	// quotaDenialsTotal counts chat sessions refused by the daily quota.
	quotaDenialsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_quota_denials_total",
			Help: "Total chat session starts denied by the daily quota.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpReqs, httpLat, httpInflight, httpRespSize,
		bookingsTotal, botPromptsTotal, quotaDenialsTotal,
	)
}

// CountBooking records one booking attempt outcome.
func CountBooking(outcome string) { bookingsTotal.WithLabelValues(outcome).Inc() }

// CountBotPrompt records one bot prompt outcome.
func CountBotPrompt(outcome string) { botPromptsTotal.WithLabelValues(outcome).Inc() }

// CountQuotaDenial records one quota-refused session start.
func CountQuotaDenial() { quotaDenialsTotal.Inc() }

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// The "path" label uses the registered route (c.FullPath()) to avoid
// unbounded cardinality from raw URLs; on 404 it falls back to the URL path.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		size := c.Writer.Size() // -1 when unknown

		httpReqs.WithLabelValues(method, path, status).Inc()
		httpLat.WithLabelValues(method, path).Observe(dur)
		if size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
