package formschema

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// Field is the validated, decoded form of a template field definition
type Field struct {
	Label        string           `json:"field_label"`
	Name         string           `json:"field_name"`
	Type         domain.FieldType `json:"field_type"`
	Required     bool             `json:"is_required"`
	DisplayOrder int              `json:"display_order"`
	Options      []string         `json:"options,omitempty"`
}

// dateLayouts are the accepted ISO-ish date forms, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var validate = validator.New()

// ValidateValue checks a single normalised value against its field definition.
// An empty value means the field was not supplied.
func ValidateValue(f Field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		if f.Required {
			return newFieldError(f, ErrMissingField, "Field '%s' is required", f.displayName())
		}
		return nil
	}

	switch f.Type {
	case domain.FieldTypeText, domain.FieldTypeTextarea:
		return nil
	case domain.FieldTypeNumber:
		if _, ok := ParseNumber(value); !ok {
			return newFieldError(f, ErrInvalidNumber, "Field '%s' must be a number", f.displayName())
		}
	case domain.FieldTypeDate:
		if _, ok := ParseDate(value); !ok {
			return newFieldError(f, ErrInvalidDate, "Field '%s' must be a valid date (YYYY-MM-DD)", f.displayName())
		}
	case domain.FieldTypeEmail:
		if err := validate.Var(value, "email"); err != nil {
			return newFieldError(f, ErrInvalidEmail, "Field '%s' must be a valid email address", f.displayName())
		}
	case domain.FieldTypeSelect:
		for _, opt := range f.Options {
			if opt == value {
				return nil
			}
		}
		return newFieldError(f, ErrInvalidOption, "Invalid option '%s' for field '%s'", value, f.displayName())
	default:
		return newFieldError(f, ErrUnknownType, "Field '%s' has unknown type '%s'", f.displayName(), f.Type)
	}
	return nil
}

// ValidateSubmission validates every field of a template against the submitted
// values and returns all failures in display order.
func ValidateSubmission(fields []Field, values map[string]string) []*FieldError {
	var errs []*FieldError
	for _, f := range fields {
		if err := ValidateValue(f, values[f.Name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ParseNumber parses a finite decimal number
func ParseNumber(value string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ParseDate parses an ISO-ish date or date-time string
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (f Field) displayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}
