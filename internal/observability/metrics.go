package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	EmbedRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embed_requests_total",
			Help: "Total number of embedding provider requests by outcome",
		},
		[]string{"provider", "outcome"},
	)
	EmbedRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "embed_request_duration_seconds",
			Help:    "Embedding provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider"},
	)
	EmbedCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embed_cache_total",
			Help: "Embedding cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	ScoresComputedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scores_computed_total",
			Help: "Total number of resume scores computed",
		},
	)

	// Scoring outcome distributions
	ATSScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_ats_score",
			Help:    "Distribution of ATS scores ([0,100])",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
	SimilarityHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scoring_similarity",
			Help:    "Distribution of semantic similarity (normalized fraction [0,1])",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(EmbedRequestsTotal)
	prometheus.MustRegister(EmbedRequestDuration)
	prometheus.MustRegister(EmbedCacheTotal)
	prometheus.MustRegister(ScoresComputedTotal)
	prometheus.MustRegister(ATSScoreHistogram)
	prometheus.MustRegister(SimilarityHistogram)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			// fallback when route pattern is unavailable
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// EmbedCacheHit records an embedding cache hit.
func EmbedCacheHit() { EmbedCacheTotal.WithLabelValues("hit").Inc() }

// EmbedCacheMiss records an embedding cache miss.
func EmbedCacheMiss() { EmbedCacheTotal.WithLabelValues("miss").Inc() }

// ObserveScore records the outcome of one completed scoring run.
func ObserveScore(score int, similarity float64) {
	ScoresComputedTotal.Inc()
	if score >= 0 && score <= 100 {
		ATSScoreHistogram.Observe(float64(score))
	}
	if similarity >= 0 && similarity <= 1 {
		SimilarityHistogram.Observe(similarity)
	}
}
