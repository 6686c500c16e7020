package formschema

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by FieldError.Is
var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidOption = errors.New("invalid option")
	ErrInvalidNumber = errors.New("invalid number")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrUnknownType   = errors.New("unknown field type")
)

// FieldError reports why a submitted value was rejected for one field
type FieldError struct {
	Field   string
	Kind    error
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Is lets errors.Is match a FieldError against its kind sentinel
func (e *FieldError) Is(target error) bool {
	return e.Kind == target
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func newFieldError(f Field, kind error, format string, args ...any) *FieldError {
	return &FieldError{
		Field:   f.Name,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Messages flattens field errors into the human-readable list shown to users
func Messages(errs []*FieldError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Message)
	}
	return out
}
