package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// AdopterRepo persists adopter questionnaires in SQLite.
type AdopterRepo struct{ db *sqlx.DB }

type adopterRow struct {
	ID                  string `db:"id"`
	Name                string `db:"name"`
	Email               string `db:"email"`
	Phone               string `db:"phone"`
	HousingSize         string `db:"housing_size"`
	HasYard             any    `db:"has_yard"`
	ActivityLevel       string `db:"activity_level"`
	HoursAlone          any    `db:"hours_alone"`
	TravelsFrequently   any    `db:"travels_frequently"`
	HasTraitPreference  any    `db:"has_trait_preference"`
	PreferredTraits     any    `db:"preferred_traits"`
	PreferredSize       string `db:"preferred_size"`
	PreferredAgeBracket string `db:"preferred_age_bracket"`
	PreferredGender     string `db:"preferred_gender"`
	IdealTags           any    `db:"ideal_tags"`
	PreviousExperience  string `db:"previous_experience"`
	CreatedAt           string `db:"created_at"`
}

func (r adopterRow) raw() domain.RawAdopter {
	return domain.RawAdopter{
		ID:                  r.ID,
		Name:                r.Name,
		Email:               r.Email,
		Phone:               r.Phone,
		HousingSize:         r.HousingSize,
		HasYard:             r.HasYard,
		ActivityLevel:       r.ActivityLevel,
		HoursAlonePerDay:    r.HoursAlone,
		TravelsFrequently:   r.TravelsFrequently,
		HasTraitPreference:  r.HasTraitPreference,
		PreferredTraits:     r.PreferredTraits,
		PreferredSize:       r.PreferredSize,
		PreferredAgeBracket: r.PreferredAgeBracket,
		PreferredGender:     r.PreferredGender,
		IdealTags:           r.IdealTags,
		PreviousExperience:  r.PreviousExperience,
		CreatedAt:           parseTime(r.CreatedAt),
	}
}

const adopterColumns = `id, name, email, phone, housing_size, has_yard, activity_level, hours_alone, travels_frequently,
	has_trait_preference, preferred_traits, preferred_size, preferred_age_bracket, preferred_gender, ideal_tags,
	previous_experience, created_at`

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Create inserts a new adopter and returns its id (generates one if empty).
func (r *AdopterRepo) Create(ctx domain.Context, a domain.AdopterProfile) (string, error) {
	ctx, span := otel.Tracer("repo.sqlite.adopters").Start(ctx, "adopters.Create")
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
	q := `INSERT INTO adopters (` + adopterColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, q, id, a.Name, a.Email, a.Phone, string(a.HousingSize), boolInt(a.HasYard),
		a.ActivityLevel, a.HoursAlonePerDay, boolInt(a.TravelsFrequently), boolInt(a.HasTraitPreference),
		string(traits), string(a.PreferredSize), string(a.PreferredAgeBracket), a.PreferredGender, string(ideal),
		string(a.PreviousExperience), formatTime(a.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("op=adopter.create: %w", domain.ErrConflict)
		}
		return "", fmt.Errorf("op=adopter.create: %w", err)
	}
	return id, nil
}

// Get loads and normalizes one adopter.
func (r *AdopterRepo) Get(ctx domain.Context, id string) (domain.AdopterProfile, error) {
	ctx, span := otel.Tracer("repo.sqlite.adopters").Start(ctx, "adopters.Get")
	defer span.End()
	var row adopterRow
	err := r.db.GetContext(ctx, &row, `SELECT `+adopterColumns+` FROM adopters WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AdopterProfile{}, fmt.Errorf("op=adopter.get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.AdopterProfile{}, fmt.Errorf("op=adopter.get: %w", err)
	}
	return domain.NormalizeAdopter(row.raw()), nil
}

// List loads all adopters in insertion order.
func (r *AdopterRepo) List(ctx domain.Context) ([]domain.AdopterProfile, error) {
	ctx, span := otel.Tracer("repo.sqlite.adopters").Start(ctx, "adopters.List")
	defer span.End()
	var rows []adopterRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+adopterColumns+` FROM adopters ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("op=adopter.list: %w", err)
	}
	out := make([]domain.AdopterProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.NormalizeAdopter(row.raw()))
	}
	return out, nil
}
