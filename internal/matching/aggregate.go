package matching

import (
	"fmt"
	"math"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// Weights distributes the final score across the four sub-scores.
// Each regime sums to 1.0 (±0.001).
type Weights struct {
	Traits      float64 `json:"traits"`
	Housing     float64 `json:"housing"`
	Routine     float64 `json:"routine"`
	Preferences float64 `json:"preferences"`
}

var (
	// WeightsWithTraitPreference applies when the adopter described an ideal personality.
	WeightsWithTraitPreference = Weights{Traits: 0.10, Housing: 0.30, Routine: 0.20, Preferences: 0.40}
	// WeightsWithoutTraitPreference drops trait alignment entirely.
	WeightsWithoutTraitPreference = Weights{Traits: 0, Housing: 0.50, Routine: 0.30, Preferences: 0.20}
)

// Sum returns the total of all weights.
func (w Weights) Sum() float64 { return w.Traits + w.Housing + w.Routine + w.Preferences }

// Validate checks that the weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Traits, w.Housing, w.Routine, w.Preferences} {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %v", domain.ErrInvalidArgument, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("%w: weights sum to %.4f, want 1.0", domain.ErrInvalidArgument, w.Sum())
	}
	return nil
}

// WeightsFor picks the regime for an adopter.
func WeightsFor(ad domain.AdopterProfile) Weights {
	if ad.HasTraitPreference {
		return WeightsWithTraitPreference
	}
	return WeightsWithoutTraitPreference
}

// Level is a classification tier of the final score.
type Level struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Icon  string  `json:"icon"`
	Min   float64 `json:"-"`
}

var (
	LevelExcellent = Level{Name: "excellent", Label: "Excellent", Icon: "✅", Min: 80}
	LevelGood      = Level{Name: "good", Label: "Good", Icon: "✔️", Min: 65}
	LevelModerate  = Level{Name: "moderate", Label: "Moderate", Icon: "⚠️", Min: 50}
	LevelLow       = Level{Name: "low", Label: "Low", Icon: "❌", Min: 0}
)

// levels is ordered from the highest threshold down.
var levels = []Level{LevelExcellent, LevelGood, LevelModerate}

// Classify maps a score to its tier; lower bounds are inclusive.
func Classify(score float64) Level {
	for _, l := range levels {
		if score >= l.Min {
			return l
		}
	}
	return LevelLow
}

// String renders the level as "Label Icon".
func (l Level) String() string { return l.Label + " " + l.Icon }

// Result is the compatibility of one animal with one adopter.
type Result struct {
	Score          float64               `json:"score"`
	Level          Level                 `json:"level"`
	TraitAlignment float64               `json:"trait_alignment"`
	Traits         TraitScores           `json:"traits"`
	Housing        float64               `json:"housing"`
	Routine        float64               `json:"routine"`
	Preferences    float64               `json:"preferences"`
	Animal         domain.AnimalProfile  `json:"animal"`
	Adopter        domain.AdopterProfile `json:"adopter"`
}

// SubScores are the four raw dimension scores before weighting.
type SubScores struct {
	Traits      float64
	Housing     float64
	Routine     float64
	Preferences float64
}

// Combine applies w to s, caps the total at 100 and rounds to one decimal.
func Combine(s SubScores, w Weights) float64 {
	total := s.Traits*w.Traits + s.Housing*w.Housing + s.Routine*w.Routine + s.Preferences*w.Preferences
	return Round1(clamp(total))
}

// Compute scores one animal against one adopter.
func Compute(a domain.AnimalProfile, ad domain.AdopterProfile) Result {
	traitScore, breakdown := TraitAlignment(a, ad)
	if !ad.HasTraitPreference {
		traitScore, breakdown = 0, TraitScores{}
	}
	s := SubScores{
		Traits:      traitScore,
		Housing:     HousingFit(a, ad),
		Routine:     RoutineFit(a, ad),
		Preferences: PreferencesFit(a, ad),
	}
	score := Combine(s, WeightsFor(ad))
	return Result{
		Score:          score,
		Level:          Classify(score),
		TraitAlignment: Round1(s.Traits),
		Traits: TraitScores{
			Playful:      Round1(breakdown.Playful),
			Affectionate: Round1(breakdown.Affectionate),
			Energetic:    Round1(breakdown.Energetic),
			Brave:        Round1(breakdown.Brave),
			Obedient:     Round1(breakdown.Obedient),
			Sociable:     Round1(breakdown.Sociable),
		},
		Housing:     Round1(s.Housing),
		Routine:     Round1(s.Routine),
		Preferences: Round1(s.Preferences),
		Animal:      a,
		Adopter:     ad,
	}
}
