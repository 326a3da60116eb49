package domain

// Trait names one of the six personality dimensions.
type Trait string

const (
	TraitPlayful      Trait = "playful"
	TraitAffectionate Trait = "affectionate"
	TraitEnergetic    Trait = "energetic"
	TraitBrave        Trait = "brave"
	TraitObedient     Trait = "obedient"
	TraitSociable     Trait = "sociable"
)

// NeutralTrait is the value assumed for a missing or unreadable trait.
const NeutralTrait = 50

// AllTraits lists the dimensions in display order.
var AllTraits = []Trait{
	TraitPlayful,
	TraitAffectionate,
	TraitEnergetic,
	TraitBrave,
	TraitObedient,
	TraitSociable,
}

// TraitVector is a six-dimensional personality profile, each value 0..100.
type TraitVector struct {
	Playful      int `json:"playful" yaml:"playful"`
	Affectionate int `json:"affectionate" yaml:"affectionate"`
	Energetic    int `json:"energetic" yaml:"energetic"`
	Brave        int `json:"brave" yaml:"brave"`
	Obedient     int `json:"obedient" yaml:"obedient"`
	Sociable     int `json:"sociable" yaml:"sociable"`
}

// NeutralTraits returns the all-50 vector.
func NeutralTraits() TraitVector {
	return TraitVector{
		Playful:      NeutralTrait,
		Affectionate: NeutralTrait,
		Energetic:    NeutralTrait,
		Brave:        NeutralTrait,
		Obedient:     NeutralTrait,
		Sociable:     NeutralTrait,
	}
}

// Get returns the value of one trait. Unknown traits read as neutral.
func (v TraitVector) Get(t Trait) int {
	switch t {
	case TraitPlayful:
		return v.Playful
	case TraitAffectionate:
		return v.Affectionate
	case TraitEnergetic:
		return v.Energetic
	case TraitBrave:
		return v.Brave
	case TraitObedient:
		return v.Obedient
	case TraitSociable:
		return v.Sociable
	}
	return NeutralTrait
}

// With returns a copy of v with trait t set to the clamped value.
func (v TraitVector) With(t Trait, value int) TraitVector {
	value = ClampTrait(value)
	switch t {
	case TraitPlayful:
		v.Playful = value
	case TraitAffectionate:
		v.Affectionate = value
	case TraitEnergetic:
		v.Energetic = value
	case TraitBrave:
		v.Brave = value
	case TraitObedient:
		v.Obedient = value
	case TraitSociable:
		v.Sociable = value
	}
	return v
}

// Clamped returns v with every value forced into [0,100].
func (v TraitVector) Clamped() TraitVector {
	for _, t := range AllTraits {
		v = v.With(t, v.Get(t))
	}
	return v
}

// ClampTrait forces a trait value into [0,100].
func ClampTrait(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
