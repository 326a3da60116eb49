package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// AnimalRepo persists animals in SQLite.
type AnimalRepo struct{ db *sqlx.DB }

type animalRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Species     string `db:"species"`
	Breed       string `db:"breed"`
	Health      string `db:"health"`
	Behavior    string `db:"behavior"`
	IntakeDate  string `db:"intake_date"`
	Age         any    `db:"age"`
	Size        string `db:"size"`
	Status      string `db:"status"`
	Personality any    `db:"personality"`
	Tags        any    `db:"tags"`
	CreatedAt   string `db:"created_at"`
}

func (r animalRow) raw() domain.RawAnimal {
	return domain.RawAnimal{
		ID:          r.ID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		Health:      r.Health,
		Behavior:    r.Behavior,
		IntakeDate:  r.IntakeDate,
		Status:      r.Status,
		Size:        r.Size,
		Age:         r.Age,
		Personality: r.Personality,
		Tags:        r.Tags,
		CreatedAt:   parseTime(r.CreatedAt),
	}
}

const animalColumns = `id, name, species, breed, health, behavior, intake_date, age, size, status, personality, tags, created_at`

// Create inserts a new animal and returns its id (generates one if empty).
func (r *AnimalRepo) Create(ctx domain.Context, a domain.AnimalProfile) (string, error) {
	ctx, span := otel.Tracer("repo.sqlite.animals").Start(ctx, "animals.Create")
	defer span.End()
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	personality, err := json.Marshal(a.Personality)
	if err != nil {
		return "", fmt.Errorf("op=animal.create: %w", err)
	}
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return "", fmt.Errorf("op=animal.create: %w", err)
	}
	q := `INSERT INTO animals (` + animalColumns + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err = r.db.ExecContext(ctx, q, id, a.Name, a.Species, a.Breed, a.Health, a.Behavior, a.IntakeDate,
		a.Age, string(a.Size), string(a.Status), string(personality), string(tags), formatTime(a.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("op=animal.create: %w", domain.ErrConflict)
		}
		return "", fmt.Errorf("op=animal.create: %w", err)
	}
	return id, nil
}

// Get loads and normalizes one animal.
func (r *AnimalRepo) Get(ctx domain.Context, id string) (domain.AnimalProfile, error) {
	ctx, span := otel.Tracer("repo.sqlite.animals").Start(ctx, "animals.Get")
	defer span.End()
	var row animalRow
	err := r.db.GetContext(ctx, &row, `SELECT `+animalColumns+` FROM animals WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AnimalProfile{}, fmt.Errorf("op=animal.get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.AnimalProfile{}, fmt.Errorf("op=animal.get: %w", err)
	}
	return domain.NormalizeAnimal(row.raw()), nil
}

// List loads all animals in insertion order.
func (r *AnimalRepo) List(ctx domain.Context) ([]domain.AnimalProfile, error) {
	ctx, span := otel.Tracer("repo.sqlite.animals").Start(ctx, "animals.List")
	defer span.End()
	var rows []animalRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+animalColumns+` FROM animals ORDER BY rowid`); err != nil {
		return nil, fmt.Errorf("op=animal.list: %w", err)
	}
	out := make([]domain.AnimalProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.NormalizeAnimal(row.raw()))
	}
	return out, nil
}

// Update rewrites every column except id and created_at.
func (r *AnimalRepo) Update(ctx domain.Context, a domain.AnimalProfile) error {
	ctx, span := otel.Tracer("repo.sqlite.animals").Start(ctx, "animals.Update")
	defer span.End()
	personality, err := json.Marshal(a.Personality)
	if err != nil {
		return fmt.Errorf("op=animal.update: %w", err)
	}
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return fmt.Errorf("op=animal.update: %w", err)
	}
	q := `UPDATE animals SET name=?, species=?, breed=?, health=?, behavior=?, intake_date=?, age=?, size=?, status=?, personality=?, tags=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, a.Name, a.Species, a.Breed, a.Health, a.Behavior, a.IntakeDate,
		a.Age, string(a.Size), string(a.Status), string(personality), string(tags), a.ID)
	if err != nil {
		return fmt.Errorf("op=animal.update: %w", err)
	}
	return requireRow(res, "op=animal.update")
}

func (r *AnimalRepo) Delete(ctx domain.Context, id string) error {
	ctx, span := otel.Tracer("repo.sqlite.animals").Start(ctx, "animals.Delete")
	defer span.End()
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("op=animal.delete: %w", err)
	}
	return requireRow(res, "op=animal.delete")
}

// requireRow turns a zero-row write into ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
