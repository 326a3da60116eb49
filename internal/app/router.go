package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpserver "github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/httpserver"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
)

// ParseOrigins splits a comma-separated origin list into a slice, trimming spaces.
// If the input is empty, returns ["*"].
func ParseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	out := make([]string, 0, 4)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// BuildRouter constructs the HTTP handler with all middlewares and routes.
func BuildRouter(cfg config.Config, srv *httpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httpserver.Recoverer())
	r.Use(httpserver.RequestID())
	r.Use(httpserver.TimeoutMiddleware(cfg.HTTPWriteTimeout))
	r.Use(httpserver.TraceMiddleware)
	r.Use(httpserver.AccessLog())
	r.Use(observability.HTTPMetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   ParseOrigins(cfg.CORSAllowOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/v1", func(v1 chi.Router) {
		if cfg.RateLimitPerMin > 0 {
			v1.Use(httprate.LimitByIP(cfg.RateLimitPerMin, time.Minute))
		}

		// Matching is the expensive path and gets its own shared bucket.
		v1.Group(func(m chi.Router) {
			m.Use(httpserver.RateLimit(srv.Limiter, httpserver.BucketMatch))
			m.Get("/compatibility", srv.CompatibilityHandler())
			m.Get("/adopters/{id}/matches", srv.AdopterMatchesHandler())
			m.Get("/animals/{id}/matches", srv.AnimalMatchesHandler())
		})

		v1.Get("/animals", srv.ListAnimalsHandler())
		v1.Post("/animals", srv.CreateAnimalHandler())
		v1.Get("/animals/{id}", srv.GetAnimalHandler())
		v1.Put("/animals/{id}", srv.UpdateAnimalHandler())
		v1.Delete("/animals/{id}", srv.DeleteAnimalHandler())
		v1.Get("/adopters", srv.ListAdoptersHandler())
		v1.Post("/adopters", srv.CreateAdopterHandler())
		v1.Get("/adopters/{id}", srv.GetAdopterHandler())
		v1.Get("/tasks", srv.ListTasksHandler())
		v1.Post("/tasks", srv.CreateTaskHandler())
		v1.Get("/tasks/upcoming", srv.UpcomingTasksHandler())
		v1.Get("/tasks/{id}", srv.GetTaskHandler())
		v1.Put("/tasks/{id}", srv.UpdateTaskHandler())
		v1.Delete("/tasks/{id}", srv.DeleteTaskHandler())
		v1.Post("/tasks/{id}/complete", srv.CompleteTaskHandler())
		v1.Get("/stats", srv.StatsHandler())
		v1.Post("/tags/derive", srv.DeriveTagsHandler())
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", srv.ReadyzHandler())
	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(httpserver.SecurityHeaders(r), "http.server")
}
