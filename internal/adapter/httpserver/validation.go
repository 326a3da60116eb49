package httpserver

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating request parameters.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func invalid(field, code, msg string) ValidationResult {
	return ValidationResult{Errors: []ValidationError{{Field: field, Code: code, Message: msg}}}
}

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateID checks an entity id taken from a path or query parameter.
func ValidateID(field, id string) ValidationResult {
	switch {
	case id == "":
		return invalid(field, "REQUIRED", field+" is required")
	case len(id) > 100:
		return invalid(field, "TOO_LONG", field+" is too long (max 100 characters)")
	case !validID.MatchString(id):
		return invalid(field, "INVALID_FORMAT", field+" contains invalid characters")
	}
	return ValidationResult{Valid: true}
}

// ParseMinScore reads the min_score query value; empty means def.
func ParseMinScore(raw string, def float64) (float64, ValidationResult) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, ValidationResult{Valid: true}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 100 {
		return 0, invalid("min_score", "INVALID_FORMAT", "min_score must be a number between 0 and 100")
	}
	return v, ValidationResult{Valid: true}
}

// ParseHorizon reads the days query value for upcoming tasks; empty means no limit.
func ParseHorizon(raw string) (int, ValidationResult) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return -1, ValidationResult{Valid: true}
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > 3650 {
		return 0, invalid("days", "INVALID_FORMAT", "days must be an integer between 0 and 3650")
	}
	return v, ValidationResult{Valid: true}
}
