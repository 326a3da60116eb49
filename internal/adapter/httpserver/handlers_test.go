package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/httpserver"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/adapter/repo/memory"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/config"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

var fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*httpserver.Server, http.Handler) {
	t.Helper()
	return newTestServerWithConfig(t, config.Config{DefaultMinScore: 50, ReminderHorizonDays: 7})
}

func newTestServerWithConfig(t *testing.T, cfg config.Config) (*httpserver.Server, http.Handler) {
	t.Helper()
	st := memory.NewStore()
	tasks := usecase.NewTaskService(st.Tasks(), st.Animals(), st.Adopters())
	tasks.Now = func() time.Time { return fixedNow }
	srv := httpserver.NewServer(
		cfg,
		usecase.NewMatchService(st.Animals(), st.Adopters()),
		usecase.NewCatalogService(st.Animals(), st.Adopters(), st.Tasks()),
		tasks,
		nil, nil, nil, nil,
	)
	r := chi.NewRouter()
	r.Use(httpserver.RequestID())
	r.Get("/v1/compatibility", srv.CompatibilityHandler())
	r.Get("/v1/animals", srv.ListAnimalsHandler())
	r.Post("/v1/animals", srv.CreateAnimalHandler())
	r.Get("/v1/animals/{id}", srv.GetAnimalHandler())
	r.Put("/v1/animals/{id}", srv.UpdateAnimalHandler())
	r.Delete("/v1/animals/{id}", srv.DeleteAnimalHandler())
	r.Get("/v1/animals/{id}/matches", srv.AnimalMatchesHandler())
	r.Get("/v1/adopters", srv.ListAdoptersHandler())
	r.Post("/v1/adopters", srv.CreateAdopterHandler())
	r.Get("/v1/adopters/{id}", srv.GetAdopterHandler())
	r.Get("/v1/adopters/{id}/matches", srv.AdopterMatchesHandler())
	r.Get("/v1/tasks", srv.ListTasksHandler())
	r.Post("/v1/tasks", srv.CreateTaskHandler())
	r.Get("/v1/tasks/upcoming", srv.UpcomingTasksHandler())
	r.Get("/v1/tasks/{id}", srv.GetTaskHandler())
	r.Put("/v1/tasks/{id}", srv.UpdateTaskHandler())
	r.Delete("/v1/tasks/{id}", srv.DeleteTaskHandler())
	r.Post("/v1/tasks/{id}/complete", srv.CompleteTaskHandler())
	r.Get("/v1/stats", srv.StatsHandler())
	r.Post("/v1/tags/derive", srv.DeriveTagsHandler())
	return srv, r
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createAnimal(t *testing.T, h http.Handler, body map[string]any) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/animals", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["id"].(string)
}

func createAdopter(t *testing.T, h http.Handler, body map[string]any) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/adopters", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["id"].(string)
}

var independentDog = map[string]any{
	"name":        "Rex",
	"species":     "dog",
	"personality": map[string]any{"energetic": 80, "affectionate": 20, "sociable": 20},
}

var yardHome = map[string]any{
	"name":                "Ana",
	"housing_size":        "large",
	"has_yard":            true,
	"hours_alone_per_day": 8,
}

func TestCreateAnimal_DerivesTagsAndDefaultsStatus(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/v1/animals", independentDog)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "available", body["status"])
	assert.ElementsMatch(t, []any{"Hyperactive", "Aloof", "Loner"}, body["tags"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	got := do(t, h, http.MethodGet, "/v1/animals/"+body["id"].(string), nil)
	assert.Equal(t, http.StatusOK, got.Code)
}

func TestCreateAnimal_Validation(t *testing.T) {
	_, h := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/animals", map[string]any{"species": "cat"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)["error"].(map[string]any)
	assert.Equal(t, "INVALID_ARGUMENT", env["code"])
	details := env["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "Name", details[0].(map[string]any)["field"])

	rec = do(t, h, http.MethodPost, "/v1/animals", map[string]any{"name": "Rex", "personality": map[string]any{"brave": 140}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/animals", map[string]any{"name": "Rex", "size": "huge"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/animals", map[string]any{"name": "Rex", "colour": "brown"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")
}

func TestCompatibility(t *testing.T) {
	_, h := newTestServer(t)
	animalID := createAnimal(t, h, independentDog)
	adopterID := createAdopter(t, h, yardHome)

	rec := do(t, h, http.MethodGet, "/v1/compatibility?animal_id="+animalID+"&adopter_id="+adopterID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, 75.0, body["score"])
	assert.Equal(t, "Good ✔️", body["label"])
	breakdown := body["breakdown"].(map[string]any)
	assert.Equal(t, 85.0, breakdown["housing"])
	assert.Equal(t, 75.0, breakdown["routine"])
	assert.Equal(t, 50.0, breakdown["preferences"])
	assert.Equal(t, 0.0, breakdown["trait_alignment"])

	rec = do(t, h, http.MethodGet, "/v1/compatibility?animal_id=missing&adopter_id="+adopterID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/compatibility?animal_id=&adopter_id="+adopterID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdopterMatches(t *testing.T) {
	_, h := newTestServer(t)
	good := createAnimal(t, h, independentDog)
	away := map[string]any{"name": "Mia", "status": "in-treatment", "personality": independentDog["personality"]}
	createAnimal(t, h, away)
	adopterID := createAdopter(t, h, yardHome)

	rec := do(t, h, http.MethodGet, "/v1/adopters/"+adopterID+"/matches", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, 50.0, body["min_score"])
	matches := body["matches"].([]any)
	require.Len(t, matches, 1, "animals in treatment are never offered")
	first := matches[0].(map[string]any)
	assert.Equal(t, good, first["animal"].(map[string]any)["id"])
	assert.Equal(t, 75.0, first["score"])

	rec = do(t, h, http.MethodGet, "/v1/adopters/"+adopterID+"/matches?min_score=90", nil)
	assert.Equal(t, 0.0, decode(t, rec)["count"])

	rec = do(t, h, http.MethodGet, "/v1/adopters/"+adopterID+"/matches?min_score=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/adopters/nobody/matches", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.0, decode(t, rec)["count"])
}

func TestAnimalMatches(t *testing.T) {
	_, h := newTestServer(t)
	animalID := createAnimal(t, h, independentDog)
	adopterID := createAdopter(t, h, yardHome)
	createAdopter(t, h, map[string]any{"name": "Busy", "housing_size": "small", "hours_alone_per_day": 10, "travels_frequently": true})

	rec := do(t, h, http.MethodGet, "/v1/animals/"+animalID+"/matches?min_score=70", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	matches := decode(t, rec)["matches"].([]any)
	require.Len(t, matches, 1)
	assert.Equal(t, adopterID, matches[0].(map[string]any)["adopter"].(map[string]any)["id"])
}

func TestTasksEndpoints(t *testing.T) {
	_, h := newTestServer(t)
	animalID := createAnimal(t, h, independentDog)

	rec := do(t, h, http.MethodPost, "/v1/tasks", map[string]any{"animal_id": animalID, "type": "vacinação", "due_date": "03/05/2026"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "vaccination", created["type"])
	assert.Equal(t, "2026-05-03", created["due_date"])
	assert.Equal(t, "urgent", created["countdown"].(map[string]any)["status"])

	rec = do(t, h, http.MethodPost, "/v1/tasks", map[string]any{"animal_id": animalID, "type": "checkup", "due_date": "2026-08-01"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/tasks", map[string]any{"animal_id": "ghost", "type": "bath", "due_date": "2026-05-02"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/tasks", map[string]any{"animal_id": animalID, "type": "juggling", "due_date": "2026-05-02"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/tasks", nil)
	assert.Equal(t, 2.0, decode(t, rec)["count"])

	rec = do(t, h, http.MethodGet, "/v1/tasks/upcoming", nil)
	body := decode(t, rec)
	assert.Equal(t, 7.0, body["days"])
	assert.Equal(t, 1.0, body["count"])

	rec = do(t, h, http.MethodGet, "/v1/stats", nil)
	stats := decode(t, rec)
	assert.Equal(t, 1.0, stats["total_animals"])
	assert.Equal(t, 2.0, stats["pending_tasks"])
	assert.Equal(t, 1.0, stats["urgent_tasks"])
}

func TestDeriveTagsHandler(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodPost, "/v1/tags/derive", map[string]any{"personality": map[string]any{"energetic": 90, "obedient": 10}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, []any{"Hyperactive", "Rebellious", "Indomitable"}, body["tags"])
	assert.Equal(t, true, body["difficult"])

	rec = do(t, h, http.MethodPost, "/v1/tags/derive", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadyzHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	srv := httpserver.NewServer(config.Config{}, usecase.MatchService{}, usecase.CatalogService{}, usecase.TaskService{}, nil, ok, ok, nil)
	rec := httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["checks"], 2)

	srv.KafkaCheck = down
	rec = httptest.NewRecorder()
	srv.ReadyzHandler()(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCompatibility_ReportsAnimalIDFirst(t *testing.T) {
	_, h := newTestServer(t)
	for range 20 {
		rec := do(t, h, http.MethodGet, "/v1/compatibility?animal_id=bad%20id&adopter_id=", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode(t, rec)["error"].(map[string]any)
		assert.Contains(t, env["message"], "animal_id")
		assert.Equal(t, "animal_id", env["details"].([]any)[0].(map[string]any)["field"])
	}
}

func TestAnimalMatches_ZeroDefaultMinScore(t *testing.T) {
	_, h := newTestServerWithConfig(t, config.Config{DefaultMinScore: 0, ReminderHorizonDays: 7})
	animalID := createAnimal(t, h, independentDog)
	createAdopter(t, h, yardHome)
	createAdopter(t, h, map[string]any{"name": "Busy", "housing_size": "small", "hours_alone_per_day": 10, "travels_frequently": true})

	rec := do(t, h, http.MethodGet, "/v1/animals/"+animalID+"/matches", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, 0.0, body["min_score"])
	assert.Equal(t, 2.0, body["count"])
}

func TestUpdateAnimal(t *testing.T) {
	_, h := newTestServer(t)
	id := createAnimal(t, h, independentDog)

	rec := do(t, h, http.MethodPut, "/v1/animals/"+id, map[string]any{"status": "in-treatment", "personality": map[string]any{"obedient": 10}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "in-treatment", body["status"])
	assert.Equal(t, "Rex", body["name"])
	personality := body["personality"].(map[string]any)
	assert.Equal(t, 10.0, personality["obedient"])
	assert.Equal(t, 80.0, personality["energetic"])

	rec = do(t, h, http.MethodGet, "/v1/animals?available=true", nil)
	assert.Equal(t, 0.0, decode(t, rec)["count"])

	rec = do(t, h, http.MethodPut, "/v1/animals/"+id, map[string]any{"status": "adopted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, "/v1/animals/"+id, map[string]any{"size": "huge"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, "/v1/animals/ghost", map[string]any{"status": "available"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAnimal_DropsItsTasks(t *testing.T) {
	_, h := newTestServer(t)
	id := createAnimal(t, h, independentDog)
	rec := do(t, h, http.MethodPost, "/v1/tasks", map[string]any{"animal_id": id, "type": "bath", "due_date": "2026-05-02"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/v1/animals/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["deleted"])

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/animals/"+id, nil).Code)
	assert.Equal(t, 0.0, decode(t, do(t, h, http.MethodGet, "/v1/tasks", nil))["count"])
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/v1/animals/"+id, nil).Code)
}

func TestTaskLifecycle(t *testing.T) {
	_, h := newTestServer(t)
	animalID := createAnimal(t, h, independentDog)
	rec := do(t, h, http.MethodPost, "/v1/tasks", map[string]any{"animal_id": animalID, "type": "bath", "due_date": "2026-04-28"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	taskID := decode(t, rec)["id"].(string)

	rec = do(t, h, http.MethodPut, "/v1/tasks/"+taskID, map[string]any{"due_date": "10/05/2026", "notes": "use the oatmeal shampoo"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "2026-05-10", body["due_date"])
	assert.Equal(t, "bath", body["type"])
	assert.Equal(t, "upcoming", body["countdown"].(map[string]any)["status"])

	rec = do(t, h, http.MethodPut, "/v1/tasks/"+taskID, map[string]any{"type": "juggling"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, "/v1/tasks/"+taskID, map[string]any{"animal_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/tasks/"+taskID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["done"])
	assert.Equal(t, 0.0, decode(t, do(t, h, http.MethodGet, "/v1/tasks", nil))["count"])

	rec = do(t, h, http.MethodGet, "/v1/tasks/"+taskID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["done"])

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/v1/tasks/"+taskID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/tasks/"+taskID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/v1/tasks/ghost/complete", nil).Code)
}
