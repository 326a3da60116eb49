package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// CreateAnimalHandler registers an animal. POST /v1/animals
func (s *Server) CreateAnimalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, fieldErrors(err))
			return
		}
		a, err := req.profile()
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		created, err := s.Catalog.RegisterAnimal(r.Context(), a)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		LoggerFrom(r).Info("animal registered", "animal_id", created.ID, "tags", created.Tags)
		writeJSON(w, http.StatusCreated, created)
	}
}

// ListAnimalsHandler lists animals, optionally only the available ones.
// GET /v1/animals?available=true
func (s *Server) ListAnimalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animals, err := s.Catalog.ListAnimals(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		onlyAvailable := r.URL.Query().Get("available") == "true"
		out := make([]domain.AnimalProfile, 0, len(animals))
		for _, a := range animals {
			if onlyAvailable && !a.Available() {
				continue
			}
			out = append(out, a)
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": out, "count": len(out)})
	}
}

// GetAnimalHandler returns one animal. GET /v1/animals/{id}
func (s *Server) GetAnimalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if v := ValidateID("id", id); !v.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
			return
		}
		a, err := s.Catalog.Animal(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// UpdateAnimalHandler edits an animal; omitted fields are kept.
// PUT /v1/animals/{id}
func (s *Server) UpdateAnimalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req updateAnimalRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, fieldErrors(err))
			return
		}
		patch, err := req.patch()
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		updated, err := s.Catalog.UpdateAnimal(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		LoggerFrom(r).Info("animal updated", "animal_id", id, "status", updated.Status)
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteAnimalHandler removes an animal and its care tasks.
// DELETE /v1/animals/{id}
func (s *Server) DeleteAnimalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := s.Catalog.DeleteAnimal(r.Context(), id); err != nil {
			writeError(w, r, err, nil)
			return
		}
		LoggerFrom(r).Info("animal deleted", "animal_id", id)
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
	}
}

// pathID reads and validates the {id} route parameter, writing the error
// response itself when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if v := ValidateID("id", id); !v.Valid {
		writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
		return "", false
	}
	return id, true
}

// CreateAdopterHandler stores an adopter questionnaire. POST /v1/adopters
func (s *Server) CreateAdopterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdopterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, fieldErrors(err))
			return
		}
		created, err := s.Catalog.RegisterAdopter(r.Context(), req.profile())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		LoggerFrom(r).Info("adopter registered", "adopter_id", created.ID)
		writeJSON(w, http.StatusCreated, created)
	}
}

// ListAdoptersHandler lists adopters. GET /v1/adopters
func (s *Server) ListAdoptersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adopters, err := s.Catalog.ListAdopters(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		if adopters == nil {
			adopters = []domain.AdopterProfile{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": adopters, "count": len(adopters)})
	}
}

// GetAdopterHandler returns one adopter. GET /v1/adopters/{id}
func (s *Server) GetAdopterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if v := ValidateID("id", id); !v.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
			return
		}
		ad, err := s.Catalog.Adopter(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, ad)
	}
}

// DeriveTagsHandler previews the tags a personality would earn.
// POST /v1/tags/derive
func (s *Server) DeriveTagsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deriveTagsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, fieldErrors(err))
			return
		}
		v := req.Personality.vector()
		tags := domain.DeriveTags(v)
		writeJSON(w, http.StatusOK, map[string]any{
			"personality": v,
			"tags":        tags,
			"difficult":   domain.HasDifficultTag(tags),
		})
	}
}
