package leads

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSpamDetected is returned when the honeypot field is populated.
	// Callers discard the submission silently; it is never shown to the user.
	ErrSpamDetected = errors.New("leads: honeypot field populated")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)

// FieldError describes a single invalid or missing submission field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports every field that failed validation. It is fatal to
// the submission attempt and is raised before any network call is made.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("leads: invalid submission: %s", strings.Join(names, ", "))
}

// Detail returns a user-facing description enumerating each problem.
func (e *ValidationError) Detail() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
