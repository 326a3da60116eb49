// Package matching scores how well an animal fits an adopter. Every function
// here is pure and expects profiles that already went through
// domain.NormalizeAnimal / domain.NormalizeAdopter.
package matching

import (
	"math"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
)

// Neutral is the baseline for the housing, routine and preference scores.
const Neutral = 50.0

// TraitScores is the per-trait alignment breakdown.
type TraitScores struct {
	Playful      float64 `json:"playful"`
	Affectionate float64 `json:"affectionate"`
	Energetic    float64 `json:"energetic"`
	Brave        float64 `json:"brave"`
	Obedient     float64 `json:"obedient"`
	Sociable     float64 `json:"sociable"`
}

func (s *TraitScores) set(t domain.Trait, v float64) {
	switch t {
	case domain.TraitPlayful:
		s.Playful = v
	case domain.TraitAffectionate:
		s.Affectionate = v
	case domain.TraitEnergetic:
		s.Energetic = v
	case domain.TraitBrave:
		s.Brave = v
	case domain.TraitObedient:
		s.Obedient = v
	case domain.TraitSociable:
		s.Sociable = v
	}
}

// TraitAlignment averages 100-|animal-preferred| over the six traits.
// The adopter's preferred vector is all-neutral when no preference was given.
func TraitAlignment(a domain.AnimalProfile, ad domain.AdopterProfile) (float64, TraitScores) {
	var breakdown TraitScores
	total := 0.0
	for _, t := range domain.AllTraits {
		diff := math.Abs(float64(a.Personality.Get(t) - ad.PreferredTraits.Get(t)))
		s := clamp(100 - diff)
		breakdown.set(t, s)
		total += s
	}
	return clamp(total / float64(len(domain.AllTraits))), breakdown
}

// HousingFit scores the animal's energy against the adopter's space.
func HousingFit(a domain.AnimalProfile, ad domain.AdopterProfile) float64 {
	energetic := domain.ClampTrait(a.Personality.Energetic)
	score := Neutral
	if energetic >= 75 {
		switch ad.HousingSize {
		case domain.SizeLarge:
			score += 25
		case domain.SizeMedium:
			score += 10
		case domain.SizeSmall:
			score -= 20
		}
	}
	if energetic <= 25 {
		score += 15
	}
	if ad.HasYard && energetic >= 60 {
		score += 10
	}
	return clamp(score)
}

// Independence is how well the animal tolerates being alone, 0..100.
func Independence(p domain.TraitVector) float64 {
	affectionate := domain.ClampTrait(p.Affectionate)
	sociable := domain.ClampTrait(p.Sociable)
	return float64(100-affectionate+100-sociable) / 2
}

// RoutineFit scores the animal's independence against hours alone and travel.
func RoutineFit(a domain.AnimalProfile, ad domain.AdopterProfile) float64 {
	independence := Independence(a.Personality)
	hours := ad.HoursAlonePerDay
	if hours < 0 {
		hours = 0
	}
	if hours > 24 {
		hours = 24
	}

	score := Neutral
	switch {
	case independence >= 70:
		if hours >= 6 {
			score += 25
		} else {
			score += 10
		}
	case independence >= 50:
		if hours <= 6 {
			score += 15
		} else if hours >= 8 {
			score -= 10
		}
	default:
		switch {
		case hours <= 2:
			score += 25
		case hours <= 4:
			score += 10
		case hours >= 8:
			score -= 30
		}
	}

	if ad.TravelsFrequently {
		if independence >= 60 {
			score += 10
		} else {
			score -= 20
		}
	}
	return clamp(score)
}

// Maximum points per stated preference.
const (
	sizePoints       = 25.0
	sizePartial      = 12.0
	agePoints        = 15.0
	ageConsolation   = 5.0
	genderPoints     = 10.0
	genderFlat       = 5.0
	tagPoints        = 30.0
	experiencePoints = 20.0
	easyAnimalPoints = 15.0
)

// PreferencesFit is the share of applicable stated preferences the animal
// satisfies, as a percentage. With nothing applicable it is exactly Neutral.
func PreferencesFit(a domain.AnimalProfile, ad domain.AdopterProfile) float64 {
	achieved, possible := 0.0, 0.0

	if ad.PreferredSize != domain.SizeUnset && a.Size != domain.SizeUnset {
		possible += sizePoints
		switch {
		case ad.PreferredSize == a.Size:
			achieved += sizePoints
		case ad.PreferredSize == domain.SizeSmall && a.Size == domain.SizeMedium:
			achieved += sizePartial
		case ad.PreferredSize == domain.SizeLarge && a.Size == domain.SizeMedium:
			achieved += sizePartial
		}
	}

	if ad.PreferredAgeBracket != domain.AgeUnset {
		possible += agePoints
		if domain.BracketForAge(a.Age) == ad.PreferredAgeBracket {
			achieved += agePoints
		} else {
			achieved += ageConsolation
		}
	}

	// The animal record has no gender, so any real preference earns a flat
	// award instead of a comparison.
	if ad.PreferredGender != "" && ad.PreferredGender != domain.GenderNoPreference {
		possible += genderPoints
		achieved += genderFlat
	}

	if len(ad.IdealTags) > 0 && len(a.Tags) > 0 {
		possible += tagPoints
		have := make(map[string]struct{}, len(a.Tags))
		for _, t := range a.Tags {
			have[t] = struct{}{}
		}
		ideal := make(map[string]struct{}, len(ad.IdealTags))
		for _, t := range ad.IdealTags {
			ideal[t] = struct{}{}
		}
		matched := 0
		for t := range ideal {
			if _, ok := have[t]; ok {
				matched++
			}
		}
		achieved += float64(matched) / float64(len(ideal)) * tagPoints
	}

	if ad.PreviousExperience != domain.ExperienceUnset {
		possible += experiencePoints
		if domain.HasDifficultTag(a.Tags) {
			switch ad.PreviousExperience {
			case domain.ExperienceALot:
				achieved += experiencePoints
			case domain.ExperienceMedium:
				achieved += experiencePoints / 2
			}
		} else {
			achieved += easyAnimalPoints
		}
	}

	if possible == 0 {
		return Neutral
	}
	return clamp(achieved / possible * 100)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }
