package formschema

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/payload"
)

// InputPrefix wraps control names so step fields never collide with other
// inputs on the page (CSRF tokens, step ids, ...).
const InputPrefix = "step_data"

// ControlKind is the kind of input control rendered for a field
type ControlKind string

const (
	ControlInput    ControlKind = "input"
	ControlTextarea ControlKind = "textarea"
	ControlSelect   ControlKind = "select"
)

// Choice is one entry of a select control
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Control describes how to render one template field
type Control struct {
	Name      string      `json:"name"`
	InputName string      `json:"input_name"`
	Label     string      `json:"label"`
	Kind      ControlKind `json:"control_kind"`
	InputType string      `json:"input_type,omitempty"`
	Required  bool        `json:"required"`
	Options   []Choice    `json:"options,omitempty"`
	Value     string      `json:"value"`
}

// Describe turns an ordered field list into render descriptors. values holds
// previously stored data for edit forms and is nil for add forms; keys that
// no longer match a field are ignored.
func Describe(fields []Field, values map[string]string) ([]Control, error) {
	controls := make([]Control, 0, len(fields))
	for _, f := range fields {
		c, err := describeField(f, values[f.Name])
		if err != nil {
			return nil, err
		}
		controls = append(controls, c)
	}
	return controls, nil
}

func describeField(f Field, value string) (Control, error) {
	c := Control{
		Name:      f.Name,
		InputName: fmt.Sprintf("%s[%s]", InputPrefix, f.Name),
		Label:     f.Label,
		Required:  f.Required,
		Value:     value,
	}

	switch f.Type {
	case domain.FieldTypeText:
		c.Kind, c.InputType = ControlInput, "text"
	case domain.FieldTypeNumber:
		c.Kind, c.InputType = ControlInput, "number"
	case domain.FieldTypeDate:
		c.Kind, c.InputType = ControlInput, "date"
	case domain.FieldTypeEmail:
		c.Kind, c.InputType = ControlInput, "email"
	case domain.FieldTypeTextarea:
		c.Kind = ControlTextarea
	case domain.FieldTypeSelect:
		c.Kind = ControlSelect
		c.Options = make([]Choice, 0, len(f.Options)+1)
		if f.Required {
			c.Options = append(c.Options, Choice{Value: "", Label: "-- Select --", Selected: value == ""})
		}
		for _, opt := range f.Options {
			c.Options = append(c.Options, Choice{Value: opt, Label: opt, Selected: opt == value})
		}
	default:
		return Control{}, fmt.Errorf("%w: %q for field %q", ErrUnknownType, f.Type, f.Name)
	}
	return c, nil
}

var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.StrictPolicy()
	})
	return sanitizer
}

// NormalizeSubmission cleans raw submitted values: reserved prefixes are
// stripped from names and framework keys (leading underscore) are dropped.
// Values have their HTML tags stripped once and entities decoded back to plain
// text, so "&lt;b&gt;" is kept as the literal text "<b>"; stored values are
// text and must be escaped when rendered. Whitespace is trimmed and empty
// values are omitted.
func NormalizeSubmission(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		name := stripPrefix(strings.TrimSpace(key))
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}
		cleaned := strings.TrimSpace(sanitizeText(value))
		if cleaned == "" {
			continue
		}
		out[name] = cleaned
	}
	return out
}

func stripPrefix(key string) string {
	prefix := InputPrefix + "["
	if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, "]") {
		return strings.TrimSpace(key[len(prefix) : len(key)-1])
	}
	return key
}

// sanitizeText strips tags and returns plain text, not HTML
func sanitizeText(value string) string {
	if !strings.ContainsAny(value, "<>&") {
		return value
	}
	return html.UnescapeString(textSanitizer().Sanitize(value))
}

// Coerce converts normalised values into payload values for the given fields.
// Numbers become JSON numbers; everything else is kept as a string. Values for
// names that are not template fields are dropped.
func Coerce(fields []Field, values map[string]string) map[string]payload.Value {
	out := make(map[string]payload.Value, len(fields))
	for _, f := range fields {
		v, ok := values[f.Name]
		if !ok || v == "" {
			continue
		}
		if f.Type == domain.FieldTypeNumber {
			if n, valid := ParseNumber(v); valid {
				out[f.Name] = payload.Number(numberLiteral(v, n))
				continue
			}
		}
		out[f.Name] = payload.String(v)
	}
	return out
}

// numberLiteral keeps the submitted literal when it is already valid JSON
// and falls back to the canonical float form otherwise (".5", "+3", "0x10").
func numberLiteral(raw string, n float64) json.Number {
	raw = strings.TrimSpace(raw)
	var num json.Number
	if raw != "" && (raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9')) && json.Unmarshal([]byte(raw), &num) == nil {
		return num
	}
	return json.Number(strconv.FormatFloat(n, 'f', -1, 64))
}
