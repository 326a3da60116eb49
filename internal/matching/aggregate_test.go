package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

func TestWeightsSumToOne(t *testing.T) {
	require.NoError(t, WeightsWithTraitPreference.Validate())
	require.NoError(t, WeightsWithoutTraitPreference.Validate())
	assert.Equal(t, 0.0, WeightsWithoutTraitPreference.Traits)

	err := Weights{Housing: 0.9}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	err = Weights{Traits: -0.1, Housing: 1.1}.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestWeightsFor(t *testing.T) {
	assert.Equal(t, WeightsWithTraitPreference, WeightsFor(domain.AdopterProfile{HasTraitPreference: true}))
	assert.Equal(t, WeightsWithoutTraitPreference, WeightsFor(domain.AdopterProfile{}))
}

func TestCombine_EqualInputsAreInvariant(t *testing.T) {
	s := SubScores{Traits: 80, Housing: 80, Routine: 80, Preferences: 80}
	assert.Equal(t, 80.0, Combine(s, WeightsWithTraitPreference))
	assert.Equal(t, 80.0, Combine(s, WeightsWithoutTraitPreference))
}

func TestCombine_CapsAt100(t *testing.T) {
	s := SubScores{Traits: 100, Housing: 100, Routine: 100, Preferences: 100}
	assert.Equal(t, 100.0, Combine(s, Weights{Traits: 1, Housing: 1, Routine: 1, Preferences: 1}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  Level
	}{
		{100, LevelExcellent},
		{80.0, LevelExcellent},
		{79.9, LevelGood},
		{65.0, LevelGood},
		{64.9, LevelModerate},
		{50.0, LevelModerate},
		{49.9, LevelLow},
		{0, LevelLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "score %v", tt.score)
	}
	assert.Equal(t, "Good ✔️", LevelGood.String())
}

func TestCompute_EndToEnd(t *testing.T) {
	animal := domain.NormalizeAnimal(domain.RawAnimal{
		ID:          "a1",
		Status:      "available",
		Personality: map[string]any{"energetic": 80, "affectionate": 20, "sociable": 20},
	})
	adopter := domain.NormalizeAdopter(domain.RawAdopter{
		ID:                 "p1",
		HousingSize:        "large",
		HasYard:            true,
		HoursAlonePerDay:   8,
		TravelsFrequently:  false,
		HasTraitPreference: false,
	})

	got := Compute(animal, adopter)
	assert.Equal(t, 85.0, got.Housing)
	assert.Equal(t, 75.0, got.Routine)
	assert.Equal(t, 50.0, got.Preferences)
	assert.Equal(t, 75.0, got.Score)
	assert.Equal(t, LevelGood, got.Level)
	assert.Equal(t, "a1", got.Animal.ID)
	assert.Equal(t, "p1", got.Adopter.ID)
}

func TestCompute_NoTraitPreferenceZeroesBreakdown(t *testing.T) {
	animal := animalWith(domain.TraitVector{Playful: 0, Affectionate: 100, Energetic: 10, Brave: 90, Obedient: 30, Sociable: 70})
	adopter := domain.AdopterProfile{PreferredTraits: domain.TraitVector{Playful: 100}}

	got := Compute(animal, adopter)
	assert.Equal(t, 0.0, got.TraitAlignment)
	assert.Equal(t, TraitScores{}, got.Traits)

	adopter.HasTraitPreference = true
	got = Compute(animal, adopter)
	assert.Greater(t, got.TraitAlignment, 0.0)
	assert.Equal(t, 0.0, got.Traits.Playful)
	assert.Equal(t, 30.0, got.Traits.Sociable)
}

func TestCompute_WeightedWithTraitPreference(t *testing.T) {
	p := domain.NeutralTraits()
	animal := animalWith(p)
	adopter := domain.AdopterProfile{HasTraitPreference: true, PreferredTraits: p, HoursAlonePerDay: 7}

	got := Compute(animal, adopter)
	// traits 100, housing 50, routine 50, preferences 50
	assert.Equal(t, 55.0, got.Score)
	assert.Equal(t, LevelModerate, got.Level)
}
