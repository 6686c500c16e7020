package formschema

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
)

// Definition is a field definition as submitted by the template form builder
type Definition struct {
	Label        string `json:"field_label"`
	Name         string `json:"field_name"`
	Type         string `json:"field_type"`
	OptionsJSON  string `json:"options_json,omitempty"`
	Required     bool   `json:"is_required"`
	DisplayOrder int    `json:"display_order"`
}

var fieldNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ReservedNames are payload keys written by the codec; fields may not use them
var ReservedNames = map[string]struct{}{
	"template_id": {},
	"step_name":   {},
	"recorded_at": {},
	"recorded_by": {},
	"raw_data":    {},
	"parse_error": {},
}

// ValidateDefinitions validates a whole field list for a template and returns
// the decoded fields sorted by display order. All problems are collected; the
// fields are only returned when the list is valid.
func ValidateDefinitions(defs []Definition) ([]Field, []string) {
	var errs []string
	fields := make([]Field, 0, len(defs))
	names := make(map[string]int, len(defs))

	for i, def := range defs {
		pos := i + 1
		label := strings.TrimSpace(def.Label)
		name := strings.TrimSpace(def.Name)
		fieldType := domain.FieldType(strings.TrimSpace(def.Type))

		if label == "" {
			errs = append(errs, fmt.Sprintf("Field %d: label is required", pos))
		}
		switch {
		case name == "":
			errs = append(errs, fmt.Sprintf("Field %d: name is required", pos))
		case !fieldNamePattern.MatchString(name):
			errs = append(errs, fmt.Sprintf("Field %d: name '%s' must be snake_case (lowercase letters, digits and underscores)", pos, name))
		default:
			if _, reserved := ReservedNames[name]; reserved {
				errs = append(errs, fmt.Sprintf("Field %d: name '%s' is reserved", pos, name))
			} else if prev, dup := names[name]; dup {
				errs = append(errs, fmt.Sprintf("Field %d: name '%s' is already used by field %d", pos, name, prev))
			} else {
				names[name] = pos
			}
		}

		var options []string
		if !fieldType.IsValid() {
			errs = append(errs, fmt.Sprintf("Field %d: invalid field type '%s'", pos, def.Type))
		} else if fieldType.HasOptions() {
			opts, optErrs := ValidateSelectOptions(def.OptionsJSON)
			for _, msg := range optErrs {
				errs = append(errs, fmt.Sprintf("Field %d: %s", pos, msg))
			}
			options = opts
		}

		fields = append(fields, Field{
			Label:        label,
			Name:         name,
			Type:         fieldType,
			Required:     def.Required,
			DisplayOrder: def.DisplayOrder,
			Options:      options,
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].DisplayOrder < fields[j].DisplayOrder
	})
	return fields, nil
}
