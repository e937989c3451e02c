package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weo_api_build_info",
			Help: "Build information of the WEO indicators API",
		},
		[]string{"version", "commit", "date"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weo_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weo_api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weo_api_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	StoreIndicators = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weo_api_store_indicators",
			Help: "Number of indicators loaded into the store",
		},
	)

	// Anthropic API metrics
	AnthropicRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weo_api_anthropic_requests_total",
			Help: "Total number of Anthropic API requests",
		},
		[]string{"endpoint", "status"},
	)

	AnthropicRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weo_api_anthropic_request_duration_seconds",
			Help:    "Duration of Anthropic API requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
		},
		[]string{"endpoint"},
	)

	AnthropicTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weo_api_anthropic_tokens_total",
			Help: "Total number of Anthropic API tokens used",
		},
		[]string{"type"}, // "input", "output"
	)

	// Answer metrics
	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weo_api_answers_total",
			Help: "Total number of answers by source",
		},
		[]string{"source"}, // "generated", "fallback", "no_data"
	)

	RelevanceFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weo_api_relevance_fallbacks_total",
			Help: "Total number of questions resolved by a relevance fallback",
		},
		[]string{"fallback"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weo_api_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// Middleware returns a chi middleware that records HTTP metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// Route pattern keeps {code} from exploding label cardinality.
		path := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			path = rctx.RoutePattern()
		}
		if path == "" {
			path = r.URL.Path
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// RecordAnthropicRequest records metrics for an Anthropic API request.
func RecordAnthropicRequest(endpoint string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	AnthropicRequestsTotal.WithLabelValues(endpoint, status).Inc()
	AnthropicRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordAnthropicTokens records token usage for an Anthropic API request.
func RecordAnthropicTokens(inputTokens, outputTokens int64) {
	AnthropicTokensTotal.WithLabelValues("input").Add(float64(inputTokens))
	AnthropicTokensTotal.WithLabelValues("output").Add(float64(outputTokens))
}

func RecordAnswer(source string) {
	AnswersTotal.WithLabelValues(source).Inc()
}

func RecordRelevanceFallback(fallback string) {
	RelevanceFallbacksTotal.WithLabelValues(fallback).Inc()
}
