package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotFound is returned when no task or wish has the requested id.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input to a mutating operation.
// No state is changed when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PreconditionError reports an operation invoked on a record whose
// status does not allow it.
type PreconditionError struct {
	Op     string
	ID     string
	Status string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot %s %s: status is %s", e.Op, e.ID, e.Status)
}

// ParseInt coerces raw user input to an integer, the way the input forms
// accept numbers. Surrounding whitespace is ignored.
func ParseInt(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: fmt.Sprintf("%s must be an integer, got %q", field, raw)}
	}
	return v, nil
}

// RequireText trims raw and rejects it when nothing is left.
func RequireText(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", &ValidationError{Field: field, Reason: field + " is required"}
	}
	return v, nil
}
