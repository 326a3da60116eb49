package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawAnimal is an animal as a store holds it, before any coercion.
// Personality and Tags may be JSON text ([]byte or string), decoded maps and
// slices, or garbage; NormalizeAnimal copes with all of them.
type RawAnimal struct {
	ID          string
	Name        string
	Species     string
	Breed       string
	Health      string
	Behavior    string
	IntakeDate  string
	Status      string
	Size        string
	Age         any
	Personality any
	Tags        any
	CreatedAt   time.Time
}

// RawAdopter is an adopter questionnaire as a store holds it.
type RawAdopter struct {
	ID                  string
	Name                string
	Email               string
	Phone               string
	HousingSize         string
	HasYard             any
	ActivityLevel       string
	HoursAlonePerDay    any
	TravelsFrequently   any
	HasTraitPreference  any
	PreferredTraits     any
	PreferredSize       string
	PreferredAgeBracket string
	PreferredGender     string
	IdealTags           any
	PreviousExperience  string
	CreatedAt           time.Time
}

// NormalizeAnimal turns a stored animal into a guaranteed-valid profile.
// Animals stored without tags get the ones derived from their personality.
func NormalizeAnimal(r RawAnimal) AnimalProfile {
	personality, _ := coerceTraits(r.Personality)
	tags := coerceTags(r.Tags)
	if len(tags) == 0 {
		tags = DeriveTags(personality)
	}
	age := coerceFloat(r.Age)
	if age < 0 {
		age = 0
	}
	return AnimalProfile{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Species:     strings.TrimSpace(r.Species),
		Breed:       strings.TrimSpace(r.Breed),
		Health:      strings.TrimSpace(r.Health),
		Behavior:    strings.TrimSpace(r.Behavior),
		IntakeDate:  strings.TrimSpace(r.IntakeDate),
		Age:         age,
		Size:        ParseSize(r.Size),
		Status:      ParseStatus(r.Status),
		Personality: personality,
		Tags:        tags,
		CreatedAt:   r.CreatedAt,
	}
}

// NormalizeAdopter turns a stored questionnaire into a guaranteed-valid
// profile. A missing preferred trait map reads as all-neutral.
func NormalizeAdopter(r RawAdopter) AdopterProfile {
	preferred, _ := coerceTraits(r.PreferredTraits)
	hours := int(math.Trunc(coerceFloat(r.HoursAlonePerDay)))
	if hours < 0 {
		hours = 0
	}
	if hours > 24 {
		hours = 24
	}
	return AdopterProfile{
		ID:                  strings.TrimSpace(r.ID),
		Name:                strings.TrimSpace(r.Name),
		Email:               strings.TrimSpace(r.Email),
		Phone:               strings.TrimSpace(r.Phone),
		HousingSize:         ParseSize(r.HousingSize),
		HasYard:             coerceBool(r.HasYard),
		ActivityLevel:       strings.TrimSpace(r.ActivityLevel),
		HoursAlonePerDay:    hours,
		TravelsFrequently:   coerceBool(r.TravelsFrequently),
		HasTraitPreference:  coerceBool(r.HasTraitPreference),
		PreferredTraits:     preferred,
		PreferredSize:       ParseSize(r.PreferredSize),
		PreferredAgeBracket: ParseAgeBracket(r.PreferredAgeBracket),
		PreferredGender:     ParseGenderPreference(r.PreferredGender),
		IdealTags:           coerceTags(r.IdealTags),
		PreviousExperience:  ParseExperience(r.PreviousExperience),
		CreatedAt:           r.CreatedAt,
	}
}

func key(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ParseSize accepts English and Portuguese size names. Unknown input is unset.
func ParseSize(s string) Size {
	switch key(s) {
	case "small", "pequeno", "p":
		return SizeSmall
	case "medium", "médio", "medio", "m":
		return SizeMedium
	case "large", "grande", "g":
		return SizeLarge
	}
	return SizeUnset
}

// ParseStatus maps a stored status; empty means available.
func ParseStatus(s string) AnimalStatus {
	switch key(s) {
	case "", "available", "disponível", "disponivel":
		return StatusAvailable
	case "in-process", "in_process", "em processo", "em_processo":
		return StatusInProcess
	case "in-treatment", "in_treatment", "em tratamento", "em_tratamento":
		return StatusInTreatment
	}
	return AnimalStatus(key(s))
}

// ParseAgeBracket accepts English and Portuguese bracket names.
func ParseAgeBracket(s string) AgeBracket {
	switch key(s) {
	case "puppy", "kitten", "puppy/kitten", "filhote":
		return AgePuppy
	case "young", "jovem":
		return AgeYoung
	case "adult", "adulto":
		return AgeAdult
	case "senior", "idoso":
		return AgeSenior
	}
	return AgeUnset
}

// ParseExperience accepts English and Portuguese experience levels.
func ParseExperience(s string) Experience {
	switch key(s) {
	case "none", "nenhuma":
		return ExperienceNone
	case "little", "pouca":
		return ExperienceLittle
	case "medium", "média", "media":
		return ExperienceMedium
	case "a_lot", "a lot", "alot", "muita":
		return ExperienceALot
	}
	return ExperienceUnset
}

// ParseGenderPreference normalizes the "any gender" answers to
// GenderNoPreference and lowercases everything else.
func ParseGenderPreference(s string) string {
	switch k := key(s); k {
	case "":
		return ""
	case GenderNoPreference, "no preference", "any", "sem_preferência", "sem_preferencia", "sem preferência", "indiferente":
		return GenderNoPreference
	default:
		return k
	}
}

var traitAliases = map[string]Trait{
	"playful":      TraitPlayful,
	"brincalhao":   TraitPlayful,
	"brincalhão":   TraitPlayful,
	"affectionate": TraitAffectionate,
	"afetuoso":     TraitAffectionate,
	"energetic":    TraitEnergetic,
	"energetico":   TraitEnergetic,
	"energético":   TraitEnergetic,
	"brave":        TraitBrave,
	"corajoso":     TraitBrave,
	"obedient":     TraitObedient,
	"obediente":    TraitObedient,
	"sociable":     TraitSociable,
	"sociavel":     TraitSociable,
	"sociável":     TraitSociable,
}

// coerceTraits reads a trait map in any supported shape. The second return
// reports whether a map was present at all.
func coerceTraits(v any) (TraitVector, bool) {
	out := NeutralTraits()
	m, ok := decodeJSON(v).(map[string]any)
	if !ok {
		if mi, isInt := v.(map[string]int); isInt {
			m = make(map[string]any, len(mi))
			for k, n := range mi {
				m[k] = n
			}
		} else {
			return out, false
		}
	}
	for k, raw := range m {
		t, known := traitAliases[key(k)]
		if !known {
			continue
		}
		out = out.With(t, coerceTraitValue(raw))
	}
	return out, true
}

func coerceTraitValue(v any) int {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return NeutralTrait
	}
	if f <= 0 {
		return 0
	}
	if f >= 100 {
		return 100
	}
	return int(math.Trunc(f))
}

// coerceTags reads a tag list given as strings or {"name": ...} objects.
// Anything that is not a list yields an empty, non-nil slice.
func coerceTags(v any) []string {
	out := []string{}
	var items []any
	switch d := decodeJSON(v).(type) {
	case []any:
		items = d
	default:
		if ss, ok := v.([]string); ok {
			for _, s := range ss {
				items = append(items, s)
			}
		}
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		var name string
		switch x := it.(type) {
		case string:
			name = x
		case map[string]any:
			name, _ = x["name"].(string)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// decodeJSON parses JSON text; already-decoded values pass through.
func decodeJSON(v any) any {
	var text []byte
	switch x := v.(type) {
	case []byte:
		text = x
	case string:
		text = []byte(x)
	default:
		return v
	}
	var out any
	if err := json.Unmarshal(text, &out); err != nil {
		return nil
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		return f, err == nil
	}
	return 0, false
}

func coerceFloat(v any) float64 {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func coerceBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch key(x) {
		case "1", "true", "t", "yes", "y", "sim", "s", "on":
			return true
		}
		return false
	case []byte:
		return coerceBool(string(x))
	}
	f, ok := toFloat(v)
	return ok && f != 0
}
