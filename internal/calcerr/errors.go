package calcerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is returned by a formula that received a non-positive
	// dimension or an otherwise unusable argument.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a material name is not in the database.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// InvalidInput wraps ErrInvalidInput with the offending parameter.
func InvalidInput(param string, value float64) error {
	return fmt.Errorf("%w: %s must be greater than zero, got %g", ErrInvalidInput, param, value)
}

// NotFound wraps ErrNotFound with the kind and name that were looked up.
func NotFound(kind, name string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
}

// Violation is a single failed constraint.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every constraint a parameter set violated.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add appends a violation.
func (e *ValidationError) Add(field, rule, message string) {
	e.Violations = append(e.Violations, Violation{Field: field, Rule: rule, Message: message})
}

// OrNil returns nil when nothing was violated, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

// Violations extracts the violation list from err, if it carries one.
func Violations(err error) []Violation {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations
	}
	return nil
}
