package domain

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrRateLimited     = errors.New("rate limited")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)

// Size is the size category shared by animals (body size) and adopters
// (housing size and size preference). The zero value means unset.
type Size string

const (
	SizeUnset  Size = ""
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// AnimalStatus is the adoption availability of an animal.
type AnimalStatus string

const (
	StatusAvailable   AnimalStatus = "available"
	StatusInProcess   AnimalStatus = "in-process"
	StatusInTreatment AnimalStatus = "in-treatment"
)

// Known reports whether s is one of the three statuses above.
func (s AnimalStatus) Known() bool {
	return s == StatusAvailable || s == StatusInProcess || s == StatusInTreatment
}

// AgeBracket is the age range an adopter prefers.
type AgeBracket string

const (
	AgeUnset  AgeBracket = ""
	AgePuppy  AgeBracket = "puppy"
	AgeYoung  AgeBracket = "young"
	AgeAdult  AgeBracket = "adult"
	AgeSenior AgeBracket = "senior"
)

// BracketForAge maps an age in years onto its bracket:
// puppy <= 1, young (1,3], adult (3,7], senior > 7.
func BracketForAge(age float64) AgeBracket {
	switch {
	case age <= 1:
		return AgePuppy
	case age <= 3:
		return AgeYoung
	case age <= 7:
		return AgeAdult
	default:
		return AgeSenior
	}
}

// Experience is the adopter's previous experience with pets.
type Experience string

const (
	ExperienceUnset  Experience = ""
	ExperienceNone   Experience = "none"
	ExperienceLittle Experience = "little"
	ExperienceMedium Experience = "medium"
	ExperienceALot   Experience = "a_lot"
)

// GenderNoPreference is the explicit "any gender" answer.
const GenderNoPreference = "no_preference"

// AnimalProfile is a normalized animal record. Personality values are always
// within [0,100] and Tags is never nil once it has passed NormalizeAnimal.
type AnimalProfile struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Species     string       `json:"species,omitempty"`
	Breed       string       `json:"breed,omitempty"`
	Health      string       `json:"health,omitempty"`
	Behavior    string       `json:"behavior,omitempty"`
	IntakeDate  string       `json:"intake_date,omitempty"`
	Age         float64      `json:"age"`
	Size        Size         `json:"size,omitempty"`
	Status      AnimalStatus `json:"status"`
	Personality TraitVector  `json:"personality"`
	Tags        []string     `json:"tags"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Available reports whether the animal can be matched.
func (a AnimalProfile) Available() bool { return a.Status == StatusAvailable }

// AdopterProfile is a normalized adopter questionnaire.
// Invariants: HoursAlonePerDay in [0,24]; PreferredTraits values in [0,100].
type AdopterProfile struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Email               string      `json:"email,omitempty"`
	Phone               string      `json:"phone,omitempty"`
	HousingSize         Size        `json:"housing_size,omitempty"`
	HasYard             bool        `json:"has_yard"`
	ActivityLevel       string      `json:"activity_level,omitempty"`
	HoursAlonePerDay    int         `json:"hours_alone_per_day"`
	TravelsFrequently   bool        `json:"travels_frequently"`
	HasTraitPreference  bool        `json:"has_trait_preference"`
	PreferredTraits     TraitVector `json:"preferred_traits"`
	PreferredSize       Size        `json:"preferred_size,omitempty"`
	PreferredAgeBracket AgeBracket  `json:"preferred_age_bracket,omitempty"`
	PreferredGender     string      `json:"preferred_gender,omitempty"`
	IdealTags           []string    `json:"ideal_tags"`
	PreviousExperience  Experience  `json:"previous_experience,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
}

// Repositories (ports)

type AnimalRepository interface {
	Create(ctx Context, a AnimalProfile) (string, error)
	Get(ctx Context, id string) (AnimalProfile, error)
	List(ctx Context) ([]AnimalProfile, error)
	// Update replaces the stored record with the same id; ErrNotFound if absent.
	Update(ctx Context, a AnimalProfile) error
	Delete(ctx Context, id string) error
}

type AdopterRepository interface {
	Create(ctx Context, a AdopterProfile) (string, error)
	Get(ctx Context, id string) (AdopterProfile, error)
	List(ctx Context) ([]AdopterProfile, error)
}

type TaskRepository interface {
	Create(ctx Context, t Task) (string, error)
	Get(ctx Context, id string) (Task, error)
	List(ctx Context, f TaskFilter) ([]Task, error)
	Update(ctx Context, t Task) error
	Delete(ctx Context, id string) error
	// DeleteByAnimal removes every task of the animal and returns how many went.
	DeleteByAnimal(ctx Context, animalID string) (int, error)
}

// ReminderPublisher (port) delivers task reminders to an external channel.
type ReminderPublisher interface {
	PublishReminder(ctx Context, r TaskReminder) error
}

// Context is an alias so that ports can be declared without every adapter
// importing the standard context package under another name.
type Context = context.Context
