package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	obsctx "github.com/fairyhunter13/pet-adoption-matcher/internal/observability"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/service/ratelimiter"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
}

func TestRecoverer_ReturnsEnvelope(t *testing.T) {
	h := Recoverer()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL"`)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestRequestID_PropagatesOrGenerates(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = obsctx.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "given-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given-1", seen)
	assert.Equal(t, "given-1", rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 26, "ULID text form")
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestSecurityHeadersAndAccessLog(t *testing.T) {
	h := SecurityHeaders(AccessLog()(okHandler()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/stats", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	rec := httptest.NewRecorder()
	TimeoutMiddleware(10*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPSTREAM_TIMEOUT")
}

type stubLimiter struct {
	allow bool
	retry time.Duration
	err   error
	calls int
}

func (s *stubLimiter) Allow(context.Context, string, string, int64) (bool, time.Duration, error) {
	s.calls++
	return s.allow, s.retry, s.err
}

func TestRateLimit(t *testing.T) {
	t.Run("nil limiter passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RateLimit(nil, BucketMatch)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("denied", func(t *testing.T) {
		lim := &stubLimiter{allow: false, retry: 1500 * time.Millisecond}
		rec := httptest.NewRecorder()
		RateLimit(lim, BucketMatch)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
	})

	t.Run("limiter error fails open", func(t *testing.T) {
		lim := &stubLimiter{allow: true, err: errors.New("redis down")}
		rec := httptest.NewRecorder()
		RateLimit(lim, BucketMatch)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 1, lim.calls)
	})
}

func TestRateLimit_RedisBucket(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	lim := ratelimiter.NewRedisLuaLimiter(rdb, map[string]ratelimiter.BucketConfig{
		BucketMatch: {Capacity: 2, RefillRate: 0.001},
	})
	h := RateLimit(lim, BucketMatch)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestValidateIDAndParsers(t *testing.T) {
	assert.True(t, ValidateID("id", "0f8c-ab_12").Valid)
	assert.Equal(t, "REQUIRED", ValidateID("id", "").Errors[0].Code)
	assert.Equal(t, "INVALID_FORMAT", ValidateID("id", "a/b").Errors[0].Code)

	v, res := ParseMinScore("", 50)
	assert.True(t, res.Valid)
	assert.Equal(t, 50.0, v)
	v, res = ParseMinScore("65.5", 50)
	assert.True(t, res.Valid)
	assert.Equal(t, 65.5, v)
	_, res = ParseMinScore("101", 50)
	assert.False(t, res.Valid)

	d, res := ParseHorizon("")
	assert.True(t, res.Valid)
	assert.Equal(t, -1, d)
	_, res = ParseHorizon("-3")
	assert.False(t, res.Valid)
}
