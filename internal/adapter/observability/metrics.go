package observability

import (
	"net/http"
	"strings"
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
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"route", "method"},
	)

	// MatchComputationsTotal counts every compatibility score computed, by level.
	MatchComputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_computations_total",
			Help: "Total number of compatibility scores computed by level",
		},
		[]string{"level"},
	)
	MatchScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_score",
			Help:    "Distribution of final compatibility scores ([0,100])",
			Buckets: []float64{10, 20, 30, 40, 50, 65, 80, 90, 100},
		},
	)
	MatchSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_search_duration_seconds",
			Help:    "Duration of match searches by direction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"direction"},
	)

	RemindersPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_reminders_published_total",
			Help: "Total number of task reminders published by countdown status",
		},
		[]string{"status"},
	)
	RemindersFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_reminders_failed_total",
			Help: "Total number of task reminders that could not be published",
		},
		[]string{"status"},
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Total number of requests rejected by a rate limit bucket",
		},
		[]string{"bucket"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(MatchComputationsTotal)
	prometheus.MustRegister(MatchScoreHistogram)
	prometheus.MustRegister(MatchSearchDuration)
	prometheus.MustRegister(RemindersPublishedTotal)
	prometheus.MustRegister(RemindersFailedTotal)
	prometheus.MustRegister(RateLimitedTotal)
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
			route = r.URL.Path
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveMatch records one computed compatibility score.
func ObserveMatch(level string, score float64) {
	if level == "" {
		level = "unknown"
	}
	MatchComputationsTotal.WithLabelValues(strings.ToLower(level)).Inc()
	if score >= 0 && score <= 100 {
		MatchScoreHistogram.Observe(score)
	}
}

// ObserveMatchSearch records how long a finder run took.
func ObserveMatchSearch(direction string, d time.Duration) {
	MatchSearchDuration.WithLabelValues(direction).Observe(d.Seconds())
}

func ReminderPublished(status string) {
	RemindersPublishedTotal.WithLabelValues(status).Inc()
}

func ReminderFailed(status string) {
	RemindersFailedTotal.WithLabelValues(status).Inc()
}

func RateLimited(bucket string) {
	RateLimitedTotal.WithLabelValues(bucket).Inc()
}
