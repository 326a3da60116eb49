package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "shelter.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestAnimalRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).Animals()

	in := domain.AnimalProfile{
		Name:        "Rex",
		Species:     "dog",
		Age:         2.5,
		Size:        domain.SizeLarge,
		Status:      domain.StatusAvailable,
		Personality: domain.TraitVector{Playful: 80, Affectionate: 20, Energetic: 90, Brave: 50, Obedient: 40, Sociable: 20},
		Tags:        []string{"Hyperactive", "Aloof"},
	}
	id, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, in.Personality, got.Personality)
	assert.Equal(t, in.Tags, got.Tags)
	assert.Equal(t, 2.5, got.Age)
	assert.Equal(t, domain.SizeLarge, got.Size)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repo.Create(ctx, domain.AnimalProfile{ID: id, Name: "dup"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnimalRepo_LegacyRowsAreNormalized(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := db.conn.Exec(`INSERT INTO animals (id, name, age, size, status, personality, tags)
		VALUES ('old', 'Bolinha', 'three', 'médio', 'Disponível', '{"energetico": "95", "obediente": 10, "afetuoso": null', 'not a list')`)
	require.NoError(t, err)
	_, err = db.conn.Exec(`INSERT INTO animals (id, name, personality, tags) VALUES ('new', 'Luna', '{"brave": 5}', '[{"name":"Medroso"}]')`)
	require.NoError(t, err)

	all, err := db.Animals().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	old := all[0]
	assert.Equal(t, "old", old.ID)
	assert.Equal(t, domain.NeutralTraits(), old.Personality, "truncated json falls back to neutral")
	assert.Equal(t, []string{}, old.Tags)
	assert.Equal(t, 0.0, old.Age)
	assert.Equal(t, domain.SizeMedium, old.Size)
	assert.True(t, old.Available())

	assert.Equal(t, 5, all[1].Personality.Brave)
	assert.Equal(t, []string{"Medroso"}, all[1].Tags)
}

func TestAdopterRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).Adopters()

	in := domain.AdopterProfile{
		Name:                "Ana",
		HousingSize:         domain.SizeSmall,
		HasYard:             true,
		HoursAlonePerDay:    9,
		TravelsFrequently:   true,
		HasTraitPreference:  true,
		PreferredTraits:     domain.TraitVector{Playful: 10, Affectionate: 90, Energetic: 20, Brave: 50, Obedient: 70, Sociable: 60},
		PreferredSize:       domain.SizeSmall,
		PreferredAgeBracket: domain.AgeSenior,
		PreferredGender:     "female",
		IdealTags:           []string{"Calm"},
		PreviousExperience:  domain.ExperienceMedium,
	}
	id, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	in.ID, in.CreatedAt = id, got.CreatedAt
	assert.Equal(t, in, got)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTaskRepo_Filter(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).Tasks()
	for _, tk := range []domain.Task{
		{AnimalID: "a1", Type: domain.TaskBath, DueDate: "2026-01-01"},
		{AnimalID: "a1", Type: domain.TaskVaccination, DueDate: "2026-01-02", Done: true},
		{AnimalID: "a2", Type: domain.TaskCheckup, DueDate: "02/01/2026", Notes: "annual"},
	} {
		_, err := repo.Create(ctx, tk)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domain.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := repo.List(ctx, domain.TaskFilter{PendingOnly: true})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	a2, err := repo.List(ctx, domain.TaskFilter{AnimalID: "a2"})
	require.NoError(t, err)
	require.Len(t, a2, 1)
	assert.Equal(t, domain.TaskCheckup, a2[0].Type)
	assert.Equal(t, "annual", a2[0].Notes)
}

func TestAnimalRepo_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).Animals()
	id, err := repo.Create(ctx, domain.AnimalProfile{Name: "Rex", Status: domain.StatusAvailable, Tags: []string{"Calm"}})
	require.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	got.Status = domain.StatusInTreatment
	got.Health = "Recovering from surgery"
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInTreatment, again.Status)
	assert.Equal(t, "Recovering from surgery", again.Health)
	assert.Equal(t, []string{"Calm"}, again.Tags)

	assert.ErrorIs(t, repo.Update(ctx, domain.AnimalProfile{ID: "ghost"}), domain.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), domain.ErrNotFound)
}

func TestTaskRepo_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).Tasks()
	_, err := repo.Create(ctx, domain.Task{ID: "t1", AnimalID: "a1", Type: domain.TaskBath, DueDate: "2030-01-01"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.Task{ID: "t2", AnimalID: "a1", Type: domain.TaskCheckup, DueDate: "2030-01-02"})
	require.NoError(t, err)

	tk, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	tk.Done = true
	tk.DueDate = "2030-02-01"
	require.NoError(t, repo.Update(ctx, tk))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, got.Done)
	assert.Equal(t, "2030-02-01", got.DueDate)

	_, err = repo.Get(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, domain.Task{ID: "ghost"}), domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "t1"))
	assert.ErrorIs(t, repo.Delete(ctx, "t1"), domain.ErrNotFound)
	n, err := repo.DeleteByAnimal(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
