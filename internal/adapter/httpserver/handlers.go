package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/matching"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/service/ratelimiter"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

// Server aggregates handlers dependencies.
type Server struct {
	Cfg        config.Config
	Matches    usecase.MatchService
	Catalog    usecase.CatalogService
	Tasks      usecase.TaskService
	Limiter    ratelimiter.Limiter
	DBCheck    func(ctx context.Context) error
	RedisCheck func(ctx context.Context) error
	KafkaCheck func(ctx context.Context) error
}

// NewServer constructs an HTTP server with all handlers and checks wired.
// Any check may be nil when the backing service is not configured.
func NewServer(cfg config.Config, matches usecase.MatchService, catalog usecase.CatalogService, tasks usecase.TaskService, limiter ratelimiter.Limiter, dbCheck, redisCheck, kafkaCheck func(context.Context) error) *Server {
	return &Server{
		Cfg:        cfg,
		Matches:    matches,
		Catalog:    catalog,
		Tasks:      tasks,
		Limiter:    limiter,
		DBCheck:    dbCheck,
		RedisCheck: redisCheck,
		KafkaCheck: kafkaCheck,
	}
}

// defaultMinScore is the configured threshold. config.Load already defaults
// it to 50, so an explicit 0 means "list everything".
func (s *Server) defaultMinScore() float64 { return s.Cfg.DefaultMinScore }

type breakdownView struct {
	TraitAlignment float64              `json:"trait_alignment"`
	Traits         matching.TraitScores `json:"traits"`
	Housing        float64              `json:"housing"`
	Routine        float64              `json:"routine"`
	Preferences    float64              `json:"preferences"`
}

type compatibilityView struct {
	AnimalID  string           `json:"animal_id"`
	AdopterID string           `json:"adopter_id"`
	Score     float64          `json:"score"`
	Level     matching.Level   `json:"level"`
	Label     string           `json:"label"`
	Weights   matching.Weights `json:"weights"`
	Breakdown breakdownView    `json:"breakdown"`
}

func newCompatibilityView(res matching.Result) compatibilityView {
	observability.ObserveMatch(res.Level.Name, res.Score)
	return compatibilityView{
		AnimalID:  res.Animal.ID,
		AdopterID: res.Adopter.ID,
		Score:     res.Score,
		Level:     res.Level,
		Label:     res.Level.String(),
		Weights:   matching.WeightsFor(res.Adopter),
		Breakdown: breakdownView{
			TraitAlignment: res.TraitAlignment,
			Traits:         res.Traits,
			Housing:        res.Housing,
			Routine:        res.Routine,
			Preferences:    res.Preferences,
		},
	}
}

type animalMatchView struct {
	Animal domain.AnimalProfile `json:"animal"`
	compatibilityView
}

type adopterMatchView struct {
	Adopter domain.AdopterProfile `json:"adopter"`
	compatibilityView
}

// CompatibilityHandler scores one animal against one adopter.
// GET /v1/compatibility?animal_id=&adopter_id=
func (s *Server) CompatibilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		animalID := strings.TrimSpace(q.Get("animal_id"))
		adopterID := strings.TrimSpace(q.Get("adopter_id"))
		ids := []struct{ field, id string }{{"animal_id", animalID}, {"adopter_id", adopterID}}
		for _, p := range ids {
			if v := ValidateID(p.field, p.id); !v.Valid {
				writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
				return
			}
		}
		res, err := s.Matches.ComputeCompatibility(r.Context(), animalID, adopterID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if res == nil {
			writeError(w, r, fmt.Errorf("%w: animal or adopter", domain.ErrNotFound), map[string]string{"animal_id": animalID, "adopter_id": adopterID})
			return
		}
		writeJSON(w, http.StatusOK, newCompatibilityView(*res))
	}
}

// AdopterMatchesHandler ranks available animals for an adopter.
// GET /v1/adopters/{id}/matches?min_score=
func (s *Server) AdopterMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if v := ValidateID("id", id); !v.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
			return
		}
		minScore, v := ParseMinScore(r.URL.Query().Get("min_score"), s.defaultMinScore())
		if !v.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
			return
		}
		start := time.Now()
		matches, err := s.Matches.FindMatchesForAdopter(r.Context(), id, minScore)
		observability.ObserveMatchSearch("adopter", time.Since(start))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]animalMatchView, 0, len(matches))
		for _, m := range matches {
			out = append(out, animalMatchView{Animal: m.Animal, compatibilityView: newCompatibilityView(m.Result)})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"adopter_id": id,
			"min_score":  minScore,
			"count":      len(out),
			"matches":    out,
		})
	}
}

// AnimalMatchesHandler ranks adopters for an animal.
// GET /v1/animals/{id}/matches?min_score=
func (s *Server) AnimalMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if v := ValidateID("id", id); !v.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
			return
		}
		minScore, v := ParseMinScore(r.URL.Query().Get("min_score"), s.defaultMinScore())
		if !v.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
			return
		}
		start := time.Now()
		matches, err := s.Matches.FindMatchesForAnimal(r.Context(), id, minScore)
		observability.ObserveMatchSearch("animal", time.Since(start))
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		out := make([]adopterMatchView, 0, len(matches))
		for _, m := range matches {
			out = append(out, adopterMatchView{Adopter: m.Adopter, compatibilityView: newCompatibilityView(m.Result)})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"animal_id": id,
			"min_score": minScore,
			"count":     len(out),
			"matches":   out,
		})
	}
}

// ReadyzHandler probes the configured backing services.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		probes := []struct {
			name string
			fn   func(context.Context) error
		}{
			{"db", s.DBCheck},
			{"redis", s.RedisCheck},
			{"kafka", s.KafkaCheck},
		}
		checks := make([]check, 0, len(probes))
		status := http.StatusOK
		for _, p := range probes {
			if p.fn == nil {
				continue
			}
			c := check{Name: p.name, OK: true}
			if err := p.fn(ctx); err != nil {
				c.OK, c.Details = false, err.Error()
				status = http.StatusServiceUnavailable
			}
			checks = append(checks, c)
		}
		writeJSON(w, status, map[string]any{"checks": checks})
	}
}
