package layout

import (
	"errors"
	"strings"
)

// ErrInvalidLayoutConfiguration is matched by every error returned when page,
// card or spacing values cannot produce a layout.
var ErrInvalidLayoutConfiguration = errors.New("invalid layout configuration")

// FieldError describes one rejected configuration value.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidationErrors collects every problem found in a configuration so callers
// can report them all at once.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return ErrInvalidLayoutConfiguration.Error() + ": " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrInvalidLayoutConfiguration
}

// Add appends a field error. Formatting is left to the caller.
func (v *ValidationErrors) Add(field, reason string) {
	*v = append(*v, &FieldError{Field: field, Reason: reason})
}

// Err returns nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Fields lists the names of the rejected fields in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, len(v))
	for i, e := range v {
		fields[i] = e.Field
	}
	return fields
}
