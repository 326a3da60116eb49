package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetricsMiddleware_Basic(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	mw := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(204) }))
	mw.ServeHTTP(rec, r)
	assert.Equal(t, 204, rec.Result().StatusCode)
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/x", "GET", "No Content")), 1.0)
}

func TestHTTPMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(HTTPMetricsMiddleware)
	router.Get("/v1/animals/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/v1/animals/{id}", "GET", "OK"))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/animals/abc", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/v1/animals/{id}", "GET", "OK"))
	assert.Equal(t, before+1, after)
}

func TestObserveMatch(t *testing.T) {
	before := testutil.ToFloat64(MatchComputationsTotal.WithLabelValues("good"))
	ObserveMatch("Good", 75)
	assert.Equal(t, before+1, testutil.ToFloat64(MatchComputationsTotal.WithLabelValues("good")))

	unknown := testutil.ToFloat64(MatchComputationsTotal.WithLabelValues("unknown"))
	ObserveMatch("", 150)
	assert.Equal(t, unknown+1, testutil.ToFloat64(MatchComputationsTotal.WithLabelValues("unknown")))
}

func TestReminderAndLimiterCounters(t *testing.T) {
	p := testutil.ToFloat64(RemindersPublishedTotal.WithLabelValues("urgent"))
	f := testutil.ToFloat64(RemindersFailedTotal.WithLabelValues("overdue"))
	rl := testutil.ToFloat64(RateLimitedTotal.WithLabelValues("match"))

	ReminderPublished("urgent")
	ReminderFailed("overdue")
	RateLimited("match")
	ObserveMatchSearch("adopter", 3*time.Millisecond)

	assert.Equal(t, p+1, testutil.ToFloat64(RemindersPublishedTotal.WithLabelValues("urgent")))
	assert.Equal(t, f+1, testutil.ToFloat64(RemindersFailedTotal.WithLabelValues("overdue")))
	assert.Equal(t, rl+1, testutil.ToFloat64(RateLimitedTotal.WithLabelValues("match")))
}
