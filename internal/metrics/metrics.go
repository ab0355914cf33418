package metrics

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"strconv"
	"time"
)

const namespace = "lookescolar"

var (
	TokensCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_created_total",
		Help:      "Access tokens issued, by scope.",
	}, []string{"scope"})

	// TokenValidations : result = valid | invalid | error
	TokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Token validation outcomes.",
	}, []string{"kind", "result"})

	AccessLogDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_log_dropped_total",
		Help:      "Access log entries dropped because the queue was full or the write failed.",
	})

	// ImagesProcessed : outcome = processed | duplicate | error
	ImagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_processed_total",
		Help:      "Uploaded images by batch outcome.",
	}, []string{"outcome"})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_batch_duration_seconds",
		Help:      "Wall time of a full upload batch.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	PreviewBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "preview_size_bytes",
		Help:      "Size of generated previews.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 6),
	})

	FeatureFlagCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feature_flag_cache_entries",
		Help:      "Tenants currently held in the feature flag cache.",
	})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler : /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware : меряет время ответа. Маршрут берётся из шаблона chi, а не из пути,
// чтобы токены не попадали в метки.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
