package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reserved payload keys
const (
	KeyTemplateID = "template_id"
	KeyStepName   = "step_name"
	KeyRecordedAt = "recorded_at"
	KeyRecordedBy = "recorded_by"
	KeyRawData    = "raw_data"
	KeyParseError = "parse_error"
)

// ParseErrorMessage is stored under KeyParseError when a payload is corrupt
const ParseErrorMessage = "Invalid JSON format"

// ErrMalformedPayload is returned by DecodeStrict for corrupt stored payloads
var ErrMalformedPayload = errors.New("malformed payload")

var reservedKeys = map[string]struct{}{
	KeyTemplateID: {},
	KeyStepName:   {},
	KeyRecordedAt: {},
	KeyRecordedBy: {},
	KeyRawData:    {},
	KeyParseError: {},
}

// IsReserved reports whether key is written by the codec itself
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

// Metadata is attached to every encoded payload
type Metadata struct {
	TemplateID uuid.UUID
	StepName   string
	RecordedAt time.Time
	RecordedBy uuid.UUID
}

// Data is a decoded payload keyed by field name
type Data map[string]Value

// Encode serialises field values plus metadata into the stored payload string.
// Key order is not significant.
func Encode(values map[string]Value, meta Metadata) (string, error) {
	out := make(map[string]Value, len(values)+4)
	for k, v := range values {
		if IsReserved(k) {
			return "", fmt.Errorf("field name %q collides with a reserved payload key", k)
		}
		out[k] = v
	}
	if meta.TemplateID != uuid.Nil {
		out[KeyTemplateID] = String(meta.TemplateID.String())
	}
	if meta.StepName != "" {
		out[KeyStepName] = String(meta.StepName)
	}
	if !meta.RecordedAt.IsZero() {
		out[KeyRecordedAt] = String(meta.RecordedAt.UTC().Format(time.RFC3339))
	}
	if meta.RecordedBy != uuid.Nil {
		out[KeyRecordedBy] = String(meta.RecordedBy.String())
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	return string(b), nil
}

// DecodeStrict parses a stored payload and fails on anything that is not a JSON object
func DecodeStrict(raw string) (Data, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrMalformedPayload
	}
	var d Data
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if d == nil {
		d = Data{}
	}
	return d, nil
}

// Decode parses a stored payload and never fails. Corrupt payloads, which exist
// in rows written before validation, come back as
// {raw_data: <original>, parse_error: "Invalid JSON format"}.
func Decode(raw string) Data {
	d, err := DecodeStrict(raw)
	if err != nil {
		return Data{
			KeyRawData:    String(raw),
			KeyParseError: String(ParseErrorMessage),
		}
	}
	return d
}

// IsMalformed reports whether d is the fallback produced for a corrupt payload
func (d Data) IsMalformed() bool {
	v, ok := d[KeyParseError]
	return ok && v.String() == ParseErrorMessage
}

// Fields returns the field values without the reserved metadata keys
func (d Data) Fields() map[string]Value {
	out := make(map[string]Value, len(d))
	for k, v := range d {
		if !IsReserved(k) {
			out[k] = v
		}
	}
	return out
}

// Strings returns every non-reserved value rendered for display
func (d Data) Strings() map[string]string {
	out := make(map[string]string, len(d))
	for k, v := range d.Fields() {
		out[k] = v.String()
	}
	return out
}

// Metadata extracts the reserved metadata keys; missing or unparsable keys stay zero
func (d Data) Metadata() Metadata {
	var meta Metadata
	if v, ok := d[KeyTemplateID]; ok {
		meta.TemplateID, _ = uuid.Parse(v.String())
	}
	if v, ok := d[KeyStepName]; ok {
		meta.StepName = v.String()
	}
	if v, ok := d[KeyRecordedAt]; ok {
		meta.RecordedAt, _ = time.Parse(time.RFC3339, v.String())
	}
	if v, ok := d[KeyRecordedBy]; ok {
		meta.RecordedBy, _ = uuid.Parse(v.String())
	}
	return meta
}
