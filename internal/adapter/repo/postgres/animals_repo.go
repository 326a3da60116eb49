package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// AnimalRepo persists and loads animals from PostgreSQL.
type AnimalRepo struct{ Pool PgxPool }

// NewAnimalRepo constructs an AnimalRepo with the given pool.
func NewAnimalRepo(p PgxPool) *AnimalRepo { return &AnimalRepo{Pool: p} }

const animalColumns = `id, name, species, breed, health, behavior, intake_date, age, size, status, personality, tags, created_at`

// Create inserts a new animal and returns its id (generates one if empty).
func (r *AnimalRepo) Create(ctx domain.Context, a domain.AnimalProfile) (string, error) {
	tracer := otel.Tracer("repo.animals")
	ctx, span := tracer.Start(ctx, "animals.Create")
	defer span.End()
	id := a.ID
	if id == "" {
		id = uuid.New().String()
	}
	span.SetAttributes(attribute.String("animal.id", id))
	personality, err := json.Marshal(a.Personality)
	if err != nil {
		return "", fmt.Errorf("op=animal.create: %w", err)
	}
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return "", fmt.Errorf("op=animal.create: %w", err)
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	q := `INSERT INTO animals (` + animalColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`
	_, err = r.Pool.Exec(ctx, q, id, a.Name, a.Species, a.Breed, a.Health, a.Behavior, a.IntakeDate,
		a.Age, string(a.Size), string(a.Status), personality, tags, created)
	if err != nil {
		return "", fmt.Errorf("op=animal.create: %w", mapErr(err))
	}
	return id, nil
}

// Get loads and normalizes one animal.
func (r *AnimalRepo) Get(ctx domain.Context, id string) (domain.AnimalProfile, error) {
	tracer := otel.Tracer("repo.animals")
	ctx, span := tracer.Start(ctx, "animals.Get")
	defer span.End()
	row := r.Pool.QueryRow(ctx, `SELECT `+animalColumns+` FROM animals WHERE id=$1`, id)
	raw, err := scanAnimal(row)
	if err != nil {
		return domain.AnimalProfile{}, fmt.Errorf("op=animal.get: %w", mapErr(err))
	}
	return domain.NormalizeAnimal(raw), nil
}

// List loads all animals ordered by creation.
func (r *AnimalRepo) List(ctx domain.Context) ([]domain.AnimalProfile, error) {
	tracer := otel.Tracer("repo.animals")
	ctx, span := tracer.Start(ctx, "animals.List")
	defer span.End()
	rows, err := r.Pool.Query(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("op=animal.list: %w", err)
	}
	defer rows.Close()
	out := []domain.AnimalProfile{}
	for rows.Next() {
		raw, err := scanAnimal(rows)
		if err != nil {
			return nil, fmt.Errorf("op=animal.list: %w", err)
		}
		out = append(out, domain.NormalizeAnimal(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=animal.list: %w", err)
	}
	span.SetAttributes(attribute.Int("animals.count", len(out)))
	return out, nil
}

// Update rewrites every column except id and created_at.
func (r *AnimalRepo) Update(ctx domain.Context, a domain.AnimalProfile) error {
	tracer := otel.Tracer("repo.animals")
	ctx, span := tracer.Start(ctx, "animals.Update")
	defer span.End()
	span.SetAttributes(attribute.String("animal.id", a.ID))
	personality, err := json.Marshal(a.Personality)
	if err != nil {
		return fmt.Errorf("op=animal.update: %w", err)
	}
	tags, err := json.Marshal(a.Tags)
	if err != nil {
		return fmt.Errorf("op=animal.update: %w", err)
	}
	q := `UPDATE animals SET name=$2, species=$3, breed=$4, health=$5, behavior=$6, intake_date=$7, age=$8, size=$9, status=$10, personality=$11, tags=$12 WHERE id=$1`
	tag, err := r.Pool.Exec(ctx, q, a.ID, a.Name, a.Species, a.Breed, a.Health, a.Behavior, a.IntakeDate,
		a.Age, string(a.Size), string(a.Status), personality, tags)
	if err != nil {
		return fmt.Errorf("op=animal.update: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=animal.update: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *AnimalRepo) Delete(ctx domain.Context, id string) error {
	tracer := otel.Tracer("repo.animals")
	ctx, span := tracer.Start(ctx, "animals.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("animal.id", id))
	tag, err := r.Pool.Exec(ctx, `DELETE FROM animals WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("op=animal.delete: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("op=animal.delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanAnimal(row pgx.Row) (domain.RawAnimal, error) {
	var a domain.RawAnimal
	var personality, tags []byte
	var age float64
	err := row.Scan(&a.ID, &a.Name, &a.Species, &a.Breed, &a.Health, &a.Behavior, &a.IntakeDate,
		&age, &a.Size, &a.Status, &personality, &tags, &a.CreatedAt)
	a.Age, a.Personality, a.Tags = age, personality, tags
	return a, err
}
