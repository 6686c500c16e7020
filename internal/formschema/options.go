package formschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ValidateSelectOptions checks the options JSON supplied when defining a select
// field. It reports every violation instead of stopping at the first one so a
// form builder can show all bad options in a single pass. The options are
// returned only when there are no errors. Whitespace-only and repeated options
// are stored as given.
func ValidateSelectOptions(raw string) ([]string, []string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, []string{"Options are required for select fields"}
	}

	var decoded any
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil || dec.More() {
		return nil, []string{"Options must be valid JSON"}
	}

	var items []any
	switch v := decoded.(type) {
	case []any:
		items = v
	case map[string]any:
		return nil, []string{"Options must be a JSON array, not an object"}
	default:
		return nil, []string{"Options must be a JSON array"}
	}

	if len(items) == 0 {
		return nil, []string{"At least one option is required"}
	}

	var errs []string
	options := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			errs = append(errs, fmt.Sprintf("Option %d must be a string", i+1))
			continue
		}
		if s == "" {
			errs = append(errs, fmt.Sprintf("Option %d must be a non-empty string", i+1))
			continue
		}
		options = append(options, s)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return options, nil
}

// EncodeOptions serialises a select field's options for storage. Nil or empty
// input encodes to nil so the column stays NULL.
func EncodeOptions(options []string) ([]byte, error) {
	if len(options) == 0 {
		return nil, nil
	}
	return json.Marshal(options)
}

// DecodeOptions reads stored options back into a list. Anything that is not a
// JSON array of strings decodes to nil.
func DecodeOptions(stored []byte) []string {
	stored = bytes.TrimSpace(stored)
	if len(stored) == 0 || bytes.Equal(stored, []byte("null")) {
		return nil
	}
	var options []string
	if err := json.Unmarshal(stored, &options); err != nil {
		return nil
	}
	if len(options) == 0 {
		return nil
	}
	return options
}
