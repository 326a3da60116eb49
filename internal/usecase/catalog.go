package usecase

import (
	"fmt"
	"time"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/pkg/textx"
)

// CatalogService registers, edits and reads animals and adopters. Tasks is
// only needed to drop an animal's care tasks along with the animal.
type CatalogService struct {
	Animals  domain.AnimalRepository
	Adopters domain.AdopterRepository
	Tasks    domain.TaskRepository
}

// NewCatalogService constructs a CatalogService with its repositories.
func NewCatalogService(a domain.AnimalRepository, ad domain.AdopterRepository, t domain.TaskRepository) CatalogService {
	return CatalogService{Animals: a, Adopters: ad, Tasks: t}
}

// AnimalPatch is a partial animal edit; nil fields keep the stored value.
// Traits are merged into the stored personality one by one.
type AnimalPatch struct {
	Name       *string
	Species    *string
	Breed      *string
	Health     *string
	Behavior   *string
	IntakeDate *string
	Age        *float64
	Size       *domain.Size
	Status     *domain.AnimalStatus
	Traits     map[domain.Trait]int
	Tags       *[]string
}

// RegisterAnimal cleans free text, clamps the personality, fills derived
// tags when none were given and stores the animal.
func (s CatalogService) RegisterAnimal(ctx domain.Context, a domain.AnimalProfile) (domain.AnimalProfile, error) {
	a.Name = textx.SanitizeLine(a.Name)
	if a.Name == "" {
		return domain.AnimalProfile{}, fmt.Errorf("%w: name required", domain.ErrInvalidArgument)
	}
	a.Species = textx.SanitizeLine(a.Species)
	a.Breed = textx.SanitizeLine(a.Breed)
	a.Health = textx.SanitizeText(a.Health)
	a.Behavior = textx.SanitizeText(a.Behavior)
	if a.Age < 0 {
		return domain.AnimalProfile{}, fmt.Errorf("%w: age must not be negative", domain.ErrInvalidArgument)
	}
	if a.Status == "" {
		a.Status = domain.StatusAvailable
	}
	a.Personality = a.Personality.Clamped()
	tags := textx.SanitizeList(a.Tags)
	if len(tags) == 0 {
		tags = domain.DeriveTags(a.Personality)
	}
	a.Tags = tags
	a.CreatedAt = time.Now().UTC()
	id, err := s.Animals.Create(ctx, a)
	if err != nil {
		return domain.AnimalProfile{}, fmt.Errorf("op=catalog.register_animal: %w", err)
	}
	a.ID = id
	return a, nil
}

// UpdateAnimal applies p to the stored animal. Status changes are how an
// animal leaves or re-enters the matching pool.
func (s CatalogService) UpdateAnimal(ctx domain.Context, id string, p AnimalPatch) (domain.AnimalProfile, error) {
	a, err := s.Animals.Get(ctx, id)
	if err != nil {
		return domain.AnimalProfile{}, fmt.Errorf("op=catalog.update_animal: %w", err)
	}
	setText := func(dst *string, src *string, clean func(string) string) {
		if src != nil {
			*dst = clean(*src)
		}
	}
	setText(&a.Name, p.Name, textx.SanitizeLine)
	setText(&a.Species, p.Species, textx.SanitizeLine)
	setText(&a.Breed, p.Breed, textx.SanitizeLine)
	setText(&a.Health, p.Health, textx.SanitizeText)
	setText(&a.Behavior, p.Behavior, textx.SanitizeText)
	setText(&a.IntakeDate, p.IntakeDate, textx.SanitizeLine)
	if a.Name == "" {
		return domain.AnimalProfile{}, fmt.Errorf("%w: name required", domain.ErrInvalidArgument)
	}
	if p.Age != nil {
		if *p.Age < 0 {
			return domain.AnimalProfile{}, fmt.Errorf("%w: age must not be negative", domain.ErrInvalidArgument)
		}
		a.Age = *p.Age
	}
	if p.Size != nil {
		a.Size = *p.Size
	}
	if p.Status != nil {
		if !p.Status.Known() {
			return domain.AnimalProfile{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidArgument, *p.Status)
		}
		a.Status = *p.Status
	}
	for t, v := range p.Traits {
		a.Personality = a.Personality.With(t, v)
	}
	a.Personality = a.Personality.Clamped()
	if p.Tags != nil {
		a.Tags = textx.SanitizeList(*p.Tags)
		if len(a.Tags) == 0 {
			a.Tags = domain.DeriveTags(a.Personality)
		}
	}
	if err := s.Animals.Update(ctx, a); err != nil {
		return domain.AnimalProfile{}, fmt.Errorf("op=catalog.update_animal: %w", err)
	}
	return a, nil
}

// DeleteAnimal removes the animal's care tasks, then the animal.
func (s CatalogService) DeleteAnimal(ctx domain.Context, id string) error {
	if _, err := s.Animals.Get(ctx, id); err != nil {
		return fmt.Errorf("op=catalog.delete_animal: %w", err)
	}
	if s.Tasks != nil {
		if _, err := s.Tasks.DeleteByAnimal(ctx, id); err != nil {
			return fmt.Errorf("op=catalog.delete_animal: %w", err)
		}
	}
	if err := s.Animals.Delete(ctx, id); err != nil {
		return fmt.Errorf("op=catalog.delete_animal: %w", err)
	}
	return nil
}

// RegisterAdopter cleans and stores an adopter questionnaire.
func (s CatalogService) RegisterAdopter(ctx domain.Context, ad domain.AdopterProfile) (domain.AdopterProfile, error) {
	ad.Name = textx.SanitizeLine(ad.Name)
	if ad.Name == "" {
		return domain.AdopterProfile{}, fmt.Errorf("%w: name required", domain.ErrInvalidArgument)
	}
	ad.Email = textx.SanitizeLine(ad.Email)
	ad.Phone = textx.SanitizeLine(ad.Phone)
	ad.ActivityLevel = textx.SanitizeLine(ad.ActivityLevel)
	if ad.HoursAlonePerDay < 0 {
		ad.HoursAlonePerDay = 0
	}
	if ad.HoursAlonePerDay > 24 {
		ad.HoursAlonePerDay = 24
	}
	if !ad.HasTraitPreference {
		ad.PreferredTraits = domain.NeutralTraits()
	}
	ad.PreferredTraits = ad.PreferredTraits.Clamped()
	ad.IdealTags = textx.SanitizeList(ad.IdealTags)
	ad.CreatedAt = time.Now().UTC()
	id, err := s.Adopters.Create(ctx, ad)
	if err != nil {
		return domain.AdopterProfile{}, fmt.Errorf("op=catalog.register_adopter: %w", err)
	}
	ad.ID = id
	return ad, nil
}

// Animal loads one animal.
func (s CatalogService) Animal(ctx domain.Context, id string) (domain.AnimalProfile, error) {
	return s.Animals.Get(ctx, id)
}

// ListAnimals loads all animals.
func (s CatalogService) ListAnimals(ctx domain.Context) ([]domain.AnimalProfile, error) {
	return s.Animals.List(ctx)
}

// Adopter loads one adopter.
func (s CatalogService) Adopter(ctx domain.Context, id string) (domain.AdopterProfile, error) {
	return s.Adopters.Get(ctx, id)
}

// ListAdopters loads all adopters.
func (s CatalogService) ListAdopters(ctx domain.Context) ([]domain.AdopterProfile, error) {
	return s.Adopters.List(ctx)
}
