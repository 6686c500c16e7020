package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
)

// For any template of N text fields declared in reverse order, saving and
// reloading it yields N fields in ascending display order with no options.
func TestProperty_TemplateFieldsRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("saved fields reload in display order", prop.ForAll(
		func(n int) bool {
			defs := make([]formschema.Definition, 0, n)
			for i := n; i >= 1; i-- {
				defs = append(defs, formschema.Definition{
					Label:        fmt.Sprintf("Reading %d", i),
					Name:         fmt.Sprintf("reading_%d", i),
					Type:         "text",
					DisplayOrder: i,
				})
			}

			saved, err := env.templates.SaveTemplate(ctx, engineer, nil, &dto.TemplateRequest{
				StepName: "Template " + uuid.NewString(),
				Fields:   defs,
			})
			if err != nil {
				return false
			}
			loaded, err := env.templates.GetTemplateWithFields(ctx, saved.TemplateID)
			if err != nil || len(loaded.Fields) != n {
				return false
			}
			for i, f := range loaded.Fields {
				if f.DisplayOrder != i+1 || f.FieldName != fmt.Sprintf("reading_%d", i+1) || f.Options != nil {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}

// For any set of text values, recording a step and reading it back returns
// exactly the non-empty trimmed values that were submitted.
func TestProperty_SubmissionRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	defs := []formschema.Definition{
		{Label: "Operator", Name: "operator", Type: "text", DisplayOrder: 1},
		{Label: "Notes", Name: "notes", Type: "textarea", DisplayOrder: 2},
		{Label: "Station", Name: "station", Type: "text", DisplayOrder: 3},
	}
	tpl, err := env.templates.SaveTemplate(ctx, engineer, nil, &dto.TemplateRequest{StepName: "Free Text", Fields: defs})
	require.NoError(t, err)
	rocket, err := env.rockets.CreateRocket(ctx, engineer, &dto.CreateRocketRequest{SerialNumber: "PROP-1", ProjectName: "Property"})
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("decoded values equal submitted values", prop.ForAll(
		func(operator, notes, station string) bool {
			submitted := map[string]string{"operator": operator, "notes": notes, "station": station}
			want := map[string]string{}
			for k, v := range submitted {
				if v != "" {
					want[k] = v
				}
			}

			recorded, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
				TemplateID: tpl.TemplateID,
				StepData:   submitted,
			})
			if err != nil {
				return false
			}
			got, err := env.steps.GetStep(ctx, recorded.StepID)
			if err != nil {
				return false
			}
			return cmp.Equal(want, got.Values)
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}

// Normalising an already normalised submission changes nothing.
func TestProperty_NormalizeSubmissionIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("normalize twice equals normalize once", prop.ForAll(
		func(keys []string, value string) bool {
			raw := make(map[string]string, len(keys))
			for _, k := range keys {
				raw["step_data["+k+"]"] = "  " + value + "  "
			}
			once := formschema.NormalizeSubmission(raw)
			twice := formschema.NormalizeSubmission(once)
			return cmp.Equal(once, twice)
		},
		gen.SliceOf(gen.Identifier()),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
