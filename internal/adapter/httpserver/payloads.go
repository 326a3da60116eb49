package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

const maxBodyBytes = 1 << 20

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New(validator.WithRequiredStructEnabled()) })
	return vld
}

// traitsPayload uses pointers so that omitted traits read as neutral.
type traitsPayload struct {
	Playful      *int `json:"playful" validate:"omitempty,min=0,max=100"`
	Affectionate *int `json:"affectionate" validate:"omitempty,min=0,max=100"`
	Energetic    *int `json:"energetic" validate:"omitempty,min=0,max=100"`
	Brave        *int `json:"brave" validate:"omitempty,min=0,max=100"`
	Obedient     *int `json:"obedient" validate:"omitempty,min=0,max=100"`
	Sociable     *int `json:"sociable" validate:"omitempty,min=0,max=100"`
}

func (p *traitsPayload) vector() domain.TraitVector {
	v := domain.NeutralTraits()
	if p == nil {
		return v
	}
	set := func(t domain.Trait, x *int) {
		if x != nil {
			v = v.With(t, *x)
		}
	}
	set(domain.TraitPlayful, p.Playful)
	set(domain.TraitAffectionate, p.Affectionate)
	set(domain.TraitEnergetic, p.Energetic)
	set(domain.TraitBrave, p.Brave)
	set(domain.TraitObedient, p.Obedient)
	set(domain.TraitSociable, p.Sociable)
	return v
}

// traits lists only the traits present in the payload.
func (p *traitsPayload) traits() map[domain.Trait]int {
	out := map[domain.Trait]int{}
	if p == nil {
		return out
	}
	for t, x := range map[domain.Trait]*int{
		domain.TraitPlayful:      p.Playful,
		domain.TraitAffectionate: p.Affectionate,
		domain.TraitEnergetic:    p.Energetic,
		domain.TraitBrave:        p.Brave,
		domain.TraitObedient:     p.Obedient,
		domain.TraitSociable:     p.Sociable,
	} {
		if x != nil {
			out[t] = *x
		}
	}
	return out
}

type createAnimalRequest struct {
	Name        string         `json:"name" validate:"required,max=120"`
	Species     string         `json:"species" validate:"max=60"`
	Breed       string         `json:"breed" validate:"max=120"`
	Health      string         `json:"health" validate:"max=2000"`
	Behavior    string         `json:"behavior" validate:"max=2000"`
	IntakeDate  string         `json:"intake_date" validate:"omitempty,max=20"`
	Age         float64        `json:"age" validate:"min=0,max=40"`
	Size        string         `json:"size" validate:"max=20"`
	Status      string         `json:"status" validate:"max=30"`
	Personality *traitsPayload `json:"personality"`
	Tags        []string       `json:"tags" validate:"max=20,dive,max=40"`
}

func (req createAnimalRequest) profile() (domain.AnimalProfile, error) {
	size := domain.ParseSize(req.Size)
	if size == domain.SizeUnset && strings.TrimSpace(req.Size) != "" {
		return domain.AnimalProfile{}, fmt.Errorf("%w: unknown size %q", domain.ErrInvalidArgument, req.Size)
	}
	return domain.AnimalProfile{
		Name:        req.Name,
		Species:     req.Species,
		Breed:       req.Breed,
		Health:      req.Health,
		Behavior:    req.Behavior,
		IntakeDate:  req.IntakeDate,
		Age:         req.Age,
		Size:        size,
		Status:      domain.ParseStatus(req.Status),
		Personality: req.Personality.vector(),
		Tags:        req.Tags,
	}, nil
}

// updateAnimalRequest is a partial edit: omitted fields keep their value.
type updateAnimalRequest struct {
	Name        *string        `json:"name" validate:"omitempty,max=120"`
	Species     *string        `json:"species" validate:"omitempty,max=60"`
	Breed       *string        `json:"breed" validate:"omitempty,max=120"`
	Health      *string        `json:"health" validate:"omitempty,max=2000"`
	Behavior    *string        `json:"behavior" validate:"omitempty,max=2000"`
	IntakeDate  *string        `json:"intake_date" validate:"omitempty,max=20"`
	Age         *float64       `json:"age" validate:"omitempty,min=0,max=40"`
	Size        *string        `json:"size" validate:"omitempty,max=20"`
	Status      *string        `json:"status" validate:"omitempty,max=30"`
	Personality *traitsPayload `json:"personality"`
	Tags        []string       `json:"tags" validate:"omitempty,max=20,dive,max=40"`
}

func (req updateAnimalRequest) patch() (usecase.AnimalPatch, error) {
	p := usecase.AnimalPatch{
		Name:       req.Name,
		Species:    req.Species,
		Breed:      req.Breed,
		Health:     req.Health,
		Behavior:   req.Behavior,
		IntakeDate: req.IntakeDate,
		Age:        req.Age,
		Traits:     req.Personality.traits(),
	}
	if req.Size != nil {
		size := domain.ParseSize(*req.Size)
		if size == domain.SizeUnset && strings.TrimSpace(*req.Size) != "" {
			return usecase.AnimalPatch{}, fmt.Errorf("%w: unknown size %q", domain.ErrInvalidArgument, *req.Size)
		}
		p.Size = &size
	}
	if req.Status != nil {
		status := domain.ParseStatus(*req.Status)
		p.Status = &status
	}
	if req.Tags != nil {
		tags := req.Tags
		p.Tags = &tags
	}
	return p, nil
}

type createAdopterRequest struct {
	Name                string         `json:"name" validate:"required,max=120"`
	Email               string         `json:"email" validate:"omitempty,email,max=200"`
	Phone               string         `json:"phone" validate:"max=40"`
	HousingSize         string         `json:"housing_size" validate:"max=20"`
	HasYard             bool           `json:"has_yard"`
	ActivityLevel       string         `json:"activity_level" validate:"max=40"`
	HoursAlonePerDay    int            `json:"hours_alone_per_day" validate:"min=0,max=24"`
	TravelsFrequently   bool           `json:"travels_frequently"`
	HasTraitPreference  bool           `json:"has_trait_preference"`
	PreferredTraits     *traitsPayload `json:"preferred_traits"`
	PreferredSize       string         `json:"preferred_size" validate:"max=20"`
	PreferredAgeBracket string         `json:"preferred_age_bracket" validate:"max=20"`
	PreferredGender     string         `json:"preferred_gender" validate:"max=30"`
	IdealTags           []string       `json:"ideal_tags" validate:"max=20,dive,max=40"`
	PreviousExperience  string         `json:"previous_experience" validate:"max=20"`
}

func (req createAdopterRequest) profile() domain.AdopterProfile {
	return domain.AdopterProfile{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		HousingSize:         domain.ParseSize(req.HousingSize),
		HasYard:             req.HasYard,
		ActivityLevel:       req.ActivityLevel,
		HoursAlonePerDay:    req.HoursAlonePerDay,
		TravelsFrequently:   req.TravelsFrequently,
		HasTraitPreference:  req.HasTraitPreference,
		PreferredTraits:     req.PreferredTraits.vector(),
		PreferredSize:       domain.ParseSize(req.PreferredSize),
		PreferredAgeBracket: domain.ParseAgeBracket(req.PreferredAgeBracket),
		PreferredGender:     domain.ParseGenderPreference(req.PreferredGender),
		IdealTags:           req.IdealTags,
		PreviousExperience:  domain.ParseExperience(req.PreviousExperience),
	}
}

type createTaskRequest struct {
	AnimalID string `json:"animal_id" validate:"required,max=100"`
	Type     string `json:"type" validate:"required,max=30"`
	DueDate  string `json:"due_date" validate:"required,max=20"`
	Notes    string `json:"notes" validate:"max=2000"`
}

type updateTaskRequest struct {
	AnimalID *string `json:"animal_id" validate:"omitempty,max=100"`
	Type     *string `json:"type" validate:"omitempty,max=30"`
	DueDate  *string `json:"due_date" validate:"omitempty,max=20"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
	Done     *bool   `json:"done"`
}

func (req updateTaskRequest) patch() usecase.TaskPatch {
	return usecase.TaskPatch{AnimalID: req.AnimalID, Type: req.Type, DueDate: req.DueDate, Notes: req.Notes, Done: req.Done}
}

type deriveTagsRequest struct {
	Personality *traitsPayload `json:"personality" validate:"required"`
}

// decodeJSON reads a size-capped JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		return fmt.Errorf("%w: content-type must be application/json", domain.ErrInvalidArgument)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", domain.ErrInvalidArgument)
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if err := getValidator().Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidArgument, err)
	}
	return nil
}

// fieldErrors lists the failing fields of a validator error for the envelope details.
func fieldErrors(err error) []ValidationError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]ValidationError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Code:    strings.ToUpper(fe.Tag()),
			Message: fe.Error(),
		})
	}
	return out
}
