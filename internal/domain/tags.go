package domain

// Tag thresholds: a trait at or above TagHigh earns its high label, at or
// below TagLow its low label.
const (
	TagHigh = 75
	TagLow  = 25
)

type tagRule struct {
	trait Trait
	high  string
	low   string
}

var tagRules = []tagRule{
	{TraitPlayful, "Playful", "Serious"},
	{TraitAffectionate, "Affectionate", "Aloof"},
	{TraitEnergetic, "Hyperactive", "Calm"},
	{TraitBrave, "Brave", "Skittish"},
	{TraitObedient, "Obedient", "Rebellious"},
	{TraitSociable, "Sociable", "Loner"},
}

// TagIndomitable is added on top of the per-trait labels for an animal that
// is both very energetic and very disobedient.
const TagIndomitable = "Indomitable"

// difficultTags signal an animal that needs an experienced adopter. The
// Portuguese names are the labels used by the shelter's historic records.
var difficultTags = map[string]struct{}{
	"Skittish":    {},
	"Aloof":       {},
	"Rebellious":  {},
	"Indomitable": {},
	"Medroso":     {},
	"Arredio":     {},
	"Rebelde":     {},
	"Indomável":   {},
}

// DeriveTags computes the descriptive personality labels for a trait vector.
// Output order follows AllTraits; the result is never nil.
func DeriveTags(v TraitVector) []string {
	v = v.Clamped()
	tags := make([]string, 0, len(tagRules)+1)
	for _, r := range tagRules {
		val := v.Get(r.trait)
		switch {
		case val >= TagHigh:
			tags = append(tags, r.high)
		case val <= TagLow:
			tags = append(tags, r.low)
		}
	}
	if v.Energetic >= TagHigh && v.Obedient <= TagLow {
		tags = append(tags, TagIndomitable)
	}
	return tags
}

// IsDifficultTag reports whether a tag marks a hard-to-handle animal.
func IsDifficultTag(tag string) bool {
	_, ok := difficultTags[tag]
	return ok
}

// HasDifficultTag reports whether any of tags is difficult.
func HasDifficultTag(tags []string) bool {
	for _, t := range tags {
		if IsDifficultTag(t) {
			return true
		}
	}
	return false
}
