// Package validation implements the field-keyed request validation shared
// by every create/update operation. Checks run before any store call; a
// failure aborts the whole request with a map of field -> message.
package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps field names to human-readable messages
type Errors map[string]string

func (e Errors) Empty() bool { return len(e) == 0 }

// Err returns a *Error when any violation was recorded, nil otherwise
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return &Error{Fields: e}
}

// Error carries the field error map across the service boundary
type Error struct {
	Fields Errors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Required records a violation when value is blank after trimming
func Required(e Errors, field, label, value string) {
	if strings.TrimSpace(value) == "" {
		e[field] = label + " is required"
	}
}

// Email records a violation when value is present but not a valid address
func Email(e Errors, field string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	if !emailRe.MatchString(strings.TrimSpace(*value)) {
		e[field] = "Invalid email format"
	}
}

// NonNegative records a violation when val < 0 (costs, amounts)
func NonNegative(e Errors, field, label string, val float64) {
	if val < 0 {
		e[field] = label + " must be zero or greater"
	}
}

// Positive records a violation when val <= 0 (template dimensions)
func Positive(e Errors, field, label string, val float64) {
	if val <= 0 {
		e[field] = label + " must be greater than zero"
	}
}

// Clean trims surrounding whitespace
func Clean(s string) string {
	return strings.TrimSpace(s)
}

// CleanPtr trims and coerces empty optional strings to null
func CleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
