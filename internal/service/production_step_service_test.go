package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/payload"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// seedMotorInspection creates a rocket and the single-field Motor Inspection template
func seedMotorInspection(t *testing.T, env *testEnv) (*dto.RocketResponse, *dto.TemplateResponse) {
	t.Helper()
	ctx := context.Background()

	tpl, err := env.templates.SaveTemplate(ctx, engineer, nil, motorInspection())
	require.NoError(t, err)
	rocket, err := env.rockets.CreateRocket(ctx, engineer, &dto.CreateRocketRequest{
		SerialNumber: "DPTI-" + uuid.NewString()[:8],
		ProjectName:  "Sounding Rocket",
	})
	require.NoError(t, err)
	return rocket, tpl
}

func TestRecordStep_StoresPayloadWithMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	recorded, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"step_data[result]": " Pass "},
	})
	require.NoError(t, err)

	got, err := env.steps.GetStep(ctx, recorded.StepID)
	require.NoError(t, err)

	assert.False(t, got.PayloadMalformed)
	assert.Equal(t, "Motor Inspection", got.StepName)
	assert.Equal(t, map[string]string{"result": "Pass"}, got.Values)
	assert.Equal(t, "Pass", got.Data["result"].String())

	meta := got.Data.Metadata()
	assert.Equal(t, tpl.TemplateID, meta.TemplateID)
	assert.Equal(t, "Motor Inspection", meta.StepName)
	assert.Equal(t, staff.UserID, meta.RecordedBy)
	assert.WithinDuration(t, time.Now(), meta.RecordedAt, time.Minute)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StepsRecordedTotal.WithLabelValues("create")))
}

func TestRecordStep_MissingRequiredFieldPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	_, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "   "},
	})
	require.Error(t, err)
	assert.True(t, response.IsCode(err, response.ErrCodeValidation))
	assert.ErrorIs(t, err, formschema.ErrMissingField)

	var fieldErr *formschema.FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "result", fieldErr.Field)

	steps, err := env.steps.ListStepsByRocket(ctx, rocket.RocketID)
	require.NoError(t, err)
	assert.Empty(t, steps)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ValidationFailuresTotal.WithLabelValues("submission")))
}

func TestRecordStep_UnknownOptionPersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	_, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Maybe"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, formschema.ErrInvalidOption)

	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"Invalid option 'Maybe' for field 'Result'"}, appErr.Errors)

	steps, err := env.steps.ListStepsByRocket(ctx, rocket.RocketID)
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestRecordStep_NumbersAreStoredAsNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tpl, err := env.templates.SaveTemplate(ctx, engineer, nil, &dto.TemplateRequest{
		StepName: "Torque Check",
		Fields:   threeDefinitions(),
	})
	require.NoError(t, err)
	rocket, err := env.rockets.CreateRocket(ctx, engineer, &dto.CreateRocketRequest{SerialNumber: "R-42", ProjectName: "Orbital"})
	require.NoError(t, err)

	recorded, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData: map[string]string{
			"torque":  "12.50",
			"_token":  "csrf",
			"unknown": "dropped",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, payload.KindNumber, recorded.Data["torque"].Kind())
	assert.Equal(t, "12.50", recorded.Data["torque"].String())
	assert.NotContains(t, recorded.Data, "_token")
	assert.NotContains(t, recorded.Data, "unknown")
	assert.NotContains(t, recorded.Data, "result")
}

func TestRecordStep_InactiveTemplateRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)
	require.NoError(t, env.templates.SetActive(ctx, engineer, tpl.TemplateID, false))

	_, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Pass"},
	})
	assert.True(t, response.IsCode(err, response.ErrCodeValidation))
}

func TestRecordStep_ViewerForbidden(t *testing.T) {
	env := newTestEnv(t)
	rocket, tpl := seedMotorInspection(t, env)

	_, err := env.steps.RecordStep(context.Background(), viewer, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Pass"},
	})
	assert.True(t, response.IsCode(err, response.ErrCodeForbidden))
}

func TestRecordStep_UnknownRocket(t *testing.T) {
	env := newTestEnv(t)
	_, tpl := seedMotorInspection(t, env)

	_, err := env.steps.RecordStep(context.Background(), staff, uuid.New(), &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Pass"},
	})
	assert.True(t, response.IsCode(err, response.ErrCodeNotFound))
}

func TestUpdateStep_KeepsHistoricalNameAndTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	recorded, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Pass"},
	})
	require.NoError(t, err)

	_, err = env.templates.UpdateTemplate(ctx, engineer, tpl.TemplateID, &dto.TemplateRequest{StepName: "Motor Inspection v2"})
	require.NoError(t, err)

	updated, err := env.steps.UpdateStep(ctx, staff, recorded.StepID, &dto.UpdateStepRequest{
		StepData: map[string]string{"result": "Fail"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Fail", updated.Values["result"])
	assert.Equal(t, "Motor Inspection", updated.StepName)
	assert.Equal(t, "Motor Inspection", updated.Data.Metadata().StepName)
	assert.True(t, recorded.RecordedAt.Equal(updated.RecordedAt))
	assert.Equal(t, staff.UserID, updated.RecordedBy)
}

func TestUpdateStep_RevalidatesAgainstTemplate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	recorded, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Pass"},
	})
	require.NoError(t, err)

	_, err = env.steps.UpdateStep(ctx, staff, recorded.StepID, &dto.UpdateStepRequest{
		StepData: map[string]string{"result": "Maybe"},
	})
	assert.ErrorIs(t, err, formschema.ErrInvalidOption)

	got, err := env.steps.GetStep(ctx, recorded.StepID)
	require.NoError(t, err)
	assert.Equal(t, "Pass", got.Values["result"])
}

func TestUpdateStep_OtherStaffForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	recorded, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
		TemplateID: tpl.TemplateID,
		StepData:   map[string]string{"result": "Pass"},
	})
	require.NoError(t, err)

	other := domain.Principal{UserID: uuid.New(), Role: domain.RoleStaff}
	_, err = env.steps.UpdateStep(ctx, other, recorded.StepID, &dto.UpdateStepRequest{
		StepData: map[string]string{"result": "Fail"},
	})
	assert.True(t, response.IsCode(err, response.ErrCodeForbidden))

	_, err = env.steps.UpdateStep(ctx, engineer, recorded.StepID, &dto.UpdateStepRequest{
		StepData: map[string]string{"result": "Fail"},
	})
	assert.NoError(t, err)
}

func TestGetStep_CorruptPayloadFallsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, _ := seedMotorInspection(t, env)

	legacy := &domain.ProductionStep{
		RocketID:   rocket.RocketID,
		StepName:   "Legacy Import",
		RecordedBy: staff.UserID,
		RecordedAt: time.Now().UTC(),
		Data:       `{"result": "Pass"`,
	}
	require.NoError(t, env.db.Create(legacy).Error)

	got, err := env.steps.GetStep(ctx, legacy.ID)
	require.NoError(t, err)
	assert.True(t, got.PayloadMalformed)
	assert.Equal(t, `{"result": "Pass"`, got.Data[payload.KeyRawData].String())
	assert.Equal(t, payload.ParseErrorMessage, got.Data[payload.KeyParseError].String())
	assert.Empty(t, got.Values)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.PayloadFallbacksTotal))

	_, err = env.steps.UpdateStep(ctx, admin, legacy.ID, &dto.UpdateStepRequest{StepData: map[string]string{"result": "Pass"}})
	assert.True(t, response.IsCode(err, response.ErrCodeConflict))
}

func TestListStepsByRocket_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rocket, tpl := seedMotorInspection(t, env)

	svc := env.steps.(*productionStepServiceImpl)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, result := range []string{"Pass", "Fail", "Pass"} {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		_, err := env.steps.RecordStep(ctx, staff, rocket.RocketID, &dto.RecordStepRequest{
			TemplateID: tpl.TemplateID,
			StepData:   map[string]string{"result": result},
		})
		require.NoError(t, err)
	}

	steps, err := env.steps.ListStepsByRocket(ctx, rocket.RocketID)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.True(t, steps[0].RecordedAt.After(steps[1].RecordedAt))
	assert.True(t, steps[1].RecordedAt.After(steps[2].RecordedAt))
}

func TestDeleteStep_AdminOnly(t *testing.T) {
	deleted := false
	repo := &MockProductionStepRepository{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := NewProductionStepService(repo, &MockStepTemplateRepository{}, &MockRocketRepository{}, nil, zap.NewNop())

	err := svc.DeleteStep(context.Background(), engineer, uuid.New())
	assert.True(t, response.IsCode(err, response.ErrCodeForbidden))
	assert.False(t, deleted)

	require.NoError(t, svc.DeleteStep(context.Background(), admin, uuid.New()))
	assert.True(t, deleted)
}

func TestDeleteStep_NotFound(t *testing.T) {
	repo := &MockProductionStepRepository{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			return gorm.ErrRecordNotFound
		},
	}
	svc := NewProductionStepService(repo, &MockStepTemplateRepository{}, &MockRocketRepository{}, nil, zap.NewNop())

	err := svc.DeleteStep(context.Background(), admin, uuid.New())
	assert.True(t, response.IsCode(err, response.ErrCodeNotFound))
}
