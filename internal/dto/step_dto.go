package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/payload"
)

// RecordStepRequest is the body for recording a production step.
// Keys of StepData may carry the step_data[...] form prefix.
type RecordStepRequest struct {
	TemplateID uuid.UUID         `json:"template_id" binding:"required"`
	StepData   StepValues `json:"step_data"`
}

// UpdateStepRequest is the body for editing a recorded step's values
type UpdateStepRequest struct {
	StepData StepValues `json:"step_data"`
}

// StepValues holds submitted field values as their literal text. In JSON each
// value may be a string, a number (kept as written, e.g. 12.50) or null, which
// counts as not supplied. Arrays, objects and booleans are rejected.
type StepValues map[string]string

// StepValueError reports a step_data entry that is not a string, number or null
type StepValueError struct {
	Field string
}

func (e *StepValueError) Error() string {
	return fmt.Sprintf("step_data.%s must be a string, a number or null", e.Field)
}

// UnmarshalJSON implements json.Unmarshaler
func (v *StepValues) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}

	out := make(StepValues, len(raw))
	for name, value := range raw {
		value = bytes.TrimSpace(value)
		switch {
		case bytes.Equal(value, []byte("null")):
			continue
		case len(value) > 0 && value[0] == '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return err
			}
			out[name] = s
		case len(value) > 0 && (value[0] == '-' || (value[0] >= '0' && value[0] <= '9')):
			var n json.Number
			if err := json.Unmarshal(value, &n); err != nil {
				return &StepValueError{Field: name}
			}
			out[name] = n.String()
		default:
			return &StepValueError{Field: name}
		}
	}
	*v = out
	return nil
}

// StepResponse represents a recorded production step with its decoded payload
type StepResponse struct {
	StepID           uuid.UUID          `json:"step_id"`
	RocketID         uuid.UUID          `json:"rocket_id"`
	TemplateID       *uuid.UUID         `json:"template_id"`
	StepName         string             `json:"step_name"`
	RecordedBy       uuid.UUID          `json:"recorded_by"`
	RecordedAt       time.Time          `json:"recorded_at"`
	Data             payload.Data       `json:"data"`
	Values           map[string]string  `json:"values"`
	PayloadMalformed bool               `json:"payload_malformed"`
	Approvals        []ApprovalResponse `json:"approvals,omitempty"`
}
