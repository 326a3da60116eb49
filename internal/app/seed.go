package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// seedYAML is the on-disk seed shape. Values are left loose so that seed
// files written by hand go through the same normalization as stored rows.
type seedYAML struct {
	Animals  []seedAnimal  `yaml:"animals"`
	Adopters []seedAdopter `yaml:"adopters"`
	Tasks    []seedTask    `yaml:"tasks"`
}

type seedAnimal struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Species     string         `yaml:"species"`
	Breed       string         `yaml:"breed"`
	Health      string         `yaml:"health"`
	Behavior    string         `yaml:"behavior"`
	IntakeDate  string         `yaml:"intake_date"`
	Status      string         `yaml:"status"`
	Size        string         `yaml:"size"`
	Age         any            `yaml:"age"`
	Personality map[string]any `yaml:"personality"`
	Tags        []string       `yaml:"tags"`
}

type seedAdopter struct {
	ID                  string         `yaml:"id"`
	Name                string         `yaml:"name"`
	Email               string         `yaml:"email"`
	Phone               string         `yaml:"phone"`
	HousingSize         string         `yaml:"housing_size"`
	HasYard             any            `yaml:"has_yard"`
	ActivityLevel       string         `yaml:"activity_level"`
	HoursAlonePerDay    any            `yaml:"hours_alone_per_day"`
	TravelsFrequently   any            `yaml:"travels_frequently"`
	HasTraitPreference  any            `yaml:"has_trait_preference"`
	PreferredTraits     map[string]any `yaml:"preferred_traits"`
	PreferredSize       string         `yaml:"preferred_size"`
	PreferredAgeBracket string         `yaml:"preferred_age_bracket"`
	PreferredGender     string         `yaml:"preferred_gender"`
	IdealTags           []string       `yaml:"ideal_tags"`
	PreviousExperience  string         `yaml:"previous_experience"`
}

type seedTask struct {
	ID       string `yaml:"id"`
	AnimalID string `yaml:"animal_id"`
	Type     string `yaml:"type"`
	DueDate  string `yaml:"due_date"`
	Notes    string `yaml:"notes"`
	Done     bool   `yaml:"done"`
}

// SeedData is a parsed and normalized seed file.
type SeedData struct {
	Animals  []domain.AnimalProfile
	Adopters []domain.AdopterProfile
	Tasks    []domain.Task
}

// SeedResult counts what ApplySeed inserted and skipped.
type SeedResult struct {
	Inserted int
	Skipped  int
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (SeedData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return SeedData{}, fmt.Errorf("seed file not found: %s", path)
		}
		return SeedData{}, err
	}
	return ParseSeed(b)
}

// ParseSeed decodes seed YAML and normalizes every record.
func ParseSeed(b []byte) (SeedData, error) {
	var doc seedYAML
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return SeedData{}, fmt.Errorf("yaml parse: %w", err)
	}
	var out SeedData
	for _, a := range doc.Animals {
		var personality any
		if a.Personality != nil {
			personality = a.Personality
		}
		out.Animals = append(out.Animals, domain.NormalizeAnimal(domain.RawAnimal{
			ID:          a.ID,
			Name:        a.Name,
			Species:     a.Species,
			Breed:       a.Breed,
			Health:      a.Health,
			Behavior:    a.Behavior,
			IntakeDate:  a.IntakeDate,
			Status:      a.Status,
			Size:        a.Size,
			Age:         a.Age,
			Personality: personality,
			Tags:        a.Tags,
		}))
	}
	for _, ad := range doc.Adopters {
		var preferred any
		if ad.PreferredTraits != nil {
			preferred = ad.PreferredTraits
		}
		out.Adopters = append(out.Adopters, domain.NormalizeAdopter(domain.RawAdopter{
			ID:                  ad.ID,
			Name:                ad.Name,
			Email:               ad.Email,
			Phone:               ad.Phone,
			HousingSize:         ad.HousingSize,
			HasYard:             ad.HasYard,
			ActivityLevel:       ad.ActivityLevel,
			HoursAlonePerDay:    ad.HoursAlonePerDay,
			TravelsFrequently:   ad.TravelsFrequently,
			HasTraitPreference:  ad.HasTraitPreference,
			PreferredTraits:     preferred,
			PreferredSize:       ad.PreferredSize,
			PreferredAgeBracket: ad.PreferredAgeBracket,
			PreferredGender:     ad.PreferredGender,
			IdealTags:           ad.IdealTags,
			PreviousExperience:  ad.PreviousExperience,
		}))
	}
	for i, t := range doc.Tasks {
		typ, ok := domain.ParseTaskType(t.Type)
		if !ok {
			return SeedData{}, fmt.Errorf("%w: task %d has unknown type %q", domain.ErrInvalidArgument, i, t.Type)
		}
		out.Tasks = append(out.Tasks, domain.Task{
			ID:       t.ID,
			AnimalID: t.AnimalID,
			Type:     typ,
			DueDate:  t.DueDate,
			Notes:    t.Notes,
			Done:     t.Done,
		})
	}
	return out, nil
}

// ApplySeed inserts seed records. Records whose id already exists are
// skipped, so applying the same file twice is harmless.
func ApplySeed(ctx context.Context, s *Stores, data SeedData) (SeedResult, error) {
	var res SeedResult
	count := func(err error, kind, id string) error {
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, domain.ErrConflict):
			res.Skipped++
			slog.Debug("seed record exists", slog.String("kind", kind), slog.String("id", id))
		default:
			return fmt.Errorf("op=app.ApplySeed %s %s: %w", kind, id, err)
		}
		return nil
	}
	for _, a := range data.Animals {
		_, err := s.Animals.Create(ctx, a)
		if err := count(err, "animal", a.ID); err != nil {
			return res, err
		}
	}
	for _, ad := range data.Adopters {
		_, err := s.Adopters.Create(ctx, ad)
		if err := count(err, "adopter", ad.ID); err != nil {
			return res, err
		}
	}
	for _, t := range data.Tasks {
		_, err := s.Tasks.Create(ctx, t)
		if err := count(err, "task", t.ID); err != nil {
			return res, err
		}
	}
	slog.Info("seed applied", slog.Int("inserted", res.Inserted), slog.Int("skipped", res.Skipped))
	return res, nil
}
