package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// AdopterRepo persists and loads adopter questionnaires from PostgreSQL.
type AdopterRepo struct{ Pool PgxPool }

// NewAdopterRepo constructs an AdopterRepo with the given pool.
func NewAdopterRepo(p PgxPool) *AdopterRepo { return &AdopterRepo{Pool: p} }

const adopterColumns = `id, name, email, phone, housing_size, has_yard, activity_level, hours_alone, travels_frequently,
	has_trait_preference, preferred_traits, preferred_size, preferred_age_bracket, preferred_gender, ideal_tags,
	previous_experience, created_at`

// Create inserts a new adopter and returns its id (generates one if empty).
func (r *AdopterRepo) Create(ctx domain.Context, a domain.AdopterProfile) (string, error) {
	tracer := otel.Tracer("repo.adopters")
	ctx, span := tracer.Start(ctx, "adopters.Create")
	defer span.End()
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	traits, err := json.Marshal(a.PreferredTraits)
	if err != nil {
		return "", fmt.Errorf("op=adopter.create: %w", err)
	}
	ideal, err := json.Marshal(a.IdealTags)
	if err != nil {
		return "", fmt.Errorf("op=adopter.create: %w", err)
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	q := `INSERT INTO adopters (` + adopterColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`
	_, err = r.Pool.Exec(ctx, q, id, a.Name, a.Email, a.Phone, string(a.HousingSize), a.HasYard, a.ActivityLevel,
		a.HoursAlonePerDay, a.TravelsFrequently, a.HasTraitPreference, traits, string(a.PreferredSize),
		string(a.PreferredAgeBracket), a.PreferredGender, ideal, string(a.PreviousExperience), created)
	if err != nil {
		return "", fmt.Errorf("op=adopter.create: %w", mapErr(err))
	}
	return id, nil
}

// Get loads and normalizes one adopter.
func (r *AdopterRepo) Get(ctx domain.Context, id string) (domain.AdopterProfile, error) {
	tracer := otel.Tracer("repo.adopters")
	ctx, span := tracer.Start(ctx, "adopters.Get")
	defer span.End()
	raw, err := scanAdopter(r.Pool.QueryRow(ctx, `SELECT `+adopterColumns+` FROM adopters WHERE id=$1`, id))
	if err != nil {
		return domain.AdopterProfile{}, fmt.Errorf("op=adopter.get: %w", mapErr(err))
	}
	return domain.NormalizeAdopter(raw), nil
}

// List loads all adopters ordered by creation.
func (r *AdopterRepo) List(ctx domain.Context) ([]domain.AdopterProfile, error) {
	tracer := otel.Tracer("repo.adopters")
	ctx, span := tracer.Start(ctx, "adopters.List")
	defer span.End()
	rows, err := r.Pool.Query(ctx, `SELECT `+adopterColumns+` FROM adopters ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("op=adopter.list: %w", err)
	}
	defer rows.Close()
	out := []domain.AdopterProfile{}
	for rows.Next() {
		raw, err := scanAdopter(rows)
		if err != nil {
			return nil, fmt.Errorf("op=adopter.list: %w", err)
		}
		out = append(out, domain.NormalizeAdopter(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=adopter.list: %w", err)
	}
	return out, nil
}

func scanAdopter(row pgx.Row) (domain.RawAdopter, error) {
	var a domain.RawAdopter
	var yard, travels, traitPref bool
	var hours int
	var traits, ideal []byte
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.HousingSize, &yard, &a.ActivityLevel, &hours,
		&travels, &traitPref, &traits, &a.PreferredSize, &a.PreferredAgeBracket, &a.PreferredGender, &ideal,
		&a.PreviousExperience, &a.CreatedAt)
	a.HasYard, a.TravelsFrequently, a.HasTraitPreference = yard, travels, traitPref
	a.HoursAlonePerDay, a.PreferredTraits, a.IdealTags = hours, traits, ideal
	return a, err
}
