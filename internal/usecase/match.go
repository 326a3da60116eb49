// Package usecase contains application business logic services.
package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/matching"
)

// DefaultMinScore is the threshold used when the caller does not pass one.
const DefaultMinScore = 50.0

// MatchService computes compatibility between animals and adopters read
// fresh from the injected repositories. It keeps no state between calls.
type MatchService struct {
	Animals  domain.AnimalRepository
	Adopters domain.AdopterRepository
}

// NewMatchService constructs a MatchService with its dependencies.
func NewMatchService(animals domain.AnimalRepository, adopters domain.AdopterRepository) MatchService {
	return MatchService{Animals: animals, Adopters: adopters}
}

// AnimalMatch pairs a candidate animal with its result for a fixed adopter.
type AnimalMatch struct {
	Animal domain.AnimalProfile `json:"animal"`
	Result matching.Result      `json:"result"`
}

// AdopterMatch pairs a candidate adopter with its result for a fixed animal.
type AdopterMatch struct {
	Adopter domain.AdopterProfile `json:"adopter"`
	Result  matching.Result       `json:"result"`
}

// ComputeCompatibility scores one pair. A nil result with a nil error means
// no match is possible: an id is empty or a record does not exist.
func (s MatchService) ComputeCompatibility(ctx domain.Context, animalID, adopterID string) (*matching.Result, error) {
	animalID, adopterID = strings.TrimSpace(animalID), strings.TrimSpace(adopterID)
	if animalID == "" || adopterID == "" {
		return nil, nil
	}
	animal, ok, err := s.animal(ctx, animalID)
	if err != nil || !ok {
		return nil, err
	}
	adopter, ok, err := s.adopter(ctx, adopterID)
	if err != nil || !ok {
		return nil, err
	}
	res := matching.Compute(animal, adopter)
	slog.Debug("compatibility computed",
		slog.String("animal_id", animalID),
		slog.String("adopter_id", adopterID),
		slog.Float64("score", res.Score),
		slog.String("level", res.Level.Name))
	return &res, nil
}

// FindMatchesForAdopter ranks every available animal for the adopter,
// keeping those scoring at least minScore. Ties keep repository order.
func (s MatchService) FindMatchesForAdopter(ctx domain.Context, adopterID string, minScore float64) ([]AnimalMatch, error) {
	out := []AnimalMatch{}
	adopterID = strings.TrimSpace(adopterID)
	if adopterID == "" {
		return out, nil
	}
	adopter, ok, err := s.adopter(ctx, adopterID)
	if err != nil || !ok {
		return out, err
	}
	animals, err := s.Animals.List(ctx)
	if err != nil {
		return out, fmt.Errorf("op=match.for_adopter: %w", err)
	}
	for _, a := range animals {
		if !a.Available() {
			continue
		}
		res := matching.Compute(a, adopter)
		if res.Score >= minScore {
			out = append(out, AnimalMatch{Animal: a, Result: res})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Result.Score > out[j].Result.Score })
	return out, nil
}

// FindMatchesForAnimal ranks every adopter for the animal. Adopters carry no
// status, so none are skipped before scoring.
func (s MatchService) FindMatchesForAnimal(ctx domain.Context, animalID string, minScore float64) ([]AdopterMatch, error) {
	out := []AdopterMatch{}
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return out, nil
	}
	animal, ok, err := s.animal(ctx, animalID)
	if err != nil || !ok {
		return out, err
	}
	adopters, err := s.Adopters.List(ctx)
	if err != nil {
		return out, fmt.Errorf("op=match.for_animal: %w", err)
	}
	for _, ad := range adopters {
		res := matching.Compute(animal, ad)
		if res.Score >= minScore {
			out = append(out, AdopterMatch{Adopter: ad, Result: res})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Result.Score > out[j].Result.Score })
	return out, nil
}

func (s MatchService) animal(ctx domain.Context, id string) (domain.AnimalProfile, bool, error) {
	a, err := s.Animals.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.AnimalProfile{}, false, nil
	}
	if err != nil {
		return domain.AnimalProfile{}, false, fmt.Errorf("op=match.load_animal: %w", err)
	}
	return a, true, nil
}

func (s MatchService) adopter(ctx domain.Context, id string) (domain.AdopterProfile, bool, error) {
	ad, err := s.Adopters.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.AdopterProfile{}, false, nil
	}
	if err != nil {
		return domain.AdopterProfile{}, false, fmt.Errorf("op=match.load_adopter: %w", err)
	}
	return ad, true, nil
}
