package httpserver

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/httprate"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/service/ratelimiter"
)

// BucketMatch is the limiter bucket shared by the match endpoints.
const BucketMatch = "match"

// RateLimit spends one token from bucket per request, keyed by client IP.
// A nil limiter or a limiter error lets the request through.
func RateLimit(lim ratelimiter.Limiter, bucket string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if lim == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := httprate.KeyByIP(r)
			if err != nil || subject == "" {
				subject = "unknown"
			}
			ok, retryAfter, err := lim.Allow(r.Context(), bucket, subject, 1)
			if err != nil {
				LoggerFrom(r).Warn("rate limiter unavailable", "bucket", bucket, "error", err)
			}
			if !ok {
				observability.RateLimited(bucket)
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				writeError(w, r, fmt.Errorf("%w: too many %s requests", domain.ErrRateLimited, bucket), map[string]int{"retry_after_seconds": secs})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
