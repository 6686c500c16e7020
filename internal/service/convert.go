package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roan2008/dpti-rocket-system-sub001/internal/domain"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/dto"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/formschema"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/payload"
	"github.com/roan2008/dpti-rocket-system-sub001/internal/response"
)

// internalError logs the persistence failure with detail and returns a generic
// error for the client
func internalError(logger *zap.Logger, message string, err error, fields ...zap.Field) *response.AppError {
	logger.Error(message, append(fields, zap.Error(err))...)
	return response.NewAppError(response.ErrCodeInternal, message, err.Error()).WithCause(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// toSchemaFields converts stored fields into validator fields, decoding select options
func toSchemaFields(rows []domain.TemplateField) []formschema.Field {
	fields := make([]formschema.Field, 0, len(rows))
	for _, row := range rows {
		f := formschema.Field{
			Label:        row.Label,
			Name:         row.Name,
			Type:         row.Type,
			Required:     row.IsRequired,
			DisplayOrder: row.DisplayOrder,
		}
		if row.Type.HasOptions() {
			f.Options = formschema.DecodeOptions(row.Options)
		}
		fields = append(fields, f)
	}
	return fields
}

// toFieldRows converts validated fields into rows. Options are only stored for select fields.
func toFieldRows(fields []formschema.Field) ([]*domain.TemplateField, error) {
	rows := make([]*domain.TemplateField, 0, len(fields))
	for _, f := range fields {
		row := &domain.TemplateField{
			Label:        f.Label,
			Name:         f.Name,
			Type:         f.Type,
			IsRequired:   f.Required,
			DisplayOrder: f.DisplayOrder,
		}
		if f.Type.HasOptions() {
			encoded, err := formschema.EncodeOptions(f.Options)
			if err != nil {
				return nil, err
			}
			row.Options = encoded
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toTemplateResponse(tpl *domain.StepTemplate) *dto.TemplateResponse {
	fields := make([]dto.FieldResponse, 0, len(tpl.Fields))
	for _, row := range tpl.Fields {
		f := dto.FieldResponse{
			FieldID:      row.ID,
			FieldLabel:   row.Label,
			FieldName:    row.Name,
			FieldType:    string(row.Type),
			IsRequired:   row.IsRequired,
			DisplayOrder: row.DisplayOrder,
		}
		if row.Type.HasOptions() {
			f.Options = formschema.DecodeOptions(row.Options)
		}
		fields = append(fields, f)
	}

	return &dto.TemplateResponse{
		TemplateID:      tpl.ID,
		StepName:        tpl.Name,
		StepDescription: tpl.Description,
		IsActive:        tpl.IsActive,
		CreatedBy:       tpl.CreatedBy,
		CreatedAt:       tpl.CreatedAt,
		UpdatedAt:       tpl.UpdatedAt,
		Fields:          fields,
	}
}

func toTemplateSummaries(templates []*domain.StepTemplate) []*dto.TemplateSummaryResponse {
	out := make([]*dto.TemplateSummaryResponse, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, &dto.TemplateSummaryResponse{
			TemplateID:      tpl.ID,
			StepName:        tpl.Name,
			StepDescription: tpl.Description,
			IsActive:        tpl.IsActive,
			CreatedAt:       tpl.CreatedAt,
		})
	}
	return out
}

func toStepResponse(step *domain.ProductionStep, data payload.Data) *dto.StepResponse {
	resp := &dto.StepResponse{
		StepID:           step.ID,
		RocketID:         step.RocketID,
		TemplateID:       step.TemplateID,
		StepName:         step.StepName,
		RecordedBy:       step.RecordedBy,
		RecordedAt:       step.RecordedAt,
		Data:             data,
		Values:           data.Strings(),
		PayloadMalformed: data.IsMalformed(),
	}
	for i := range step.Approvals {
		resp.Approvals = append(resp.Approvals, toApprovalResponse(&step.Approvals[i]))
	}
	return resp
}

func toApprovalResponse(a *domain.Approval) dto.ApprovalResponse {
	return dto.ApprovalResponse{
		ApprovalID: a.ID,
		StepID:     a.StepID,
		ReviewerID: a.ReviewerID,
		Status:     string(a.Status),
		Comments:   a.Comments,
		ApprovedAt: a.ApprovedAt,
	}
}

func toRocketResponse(r *domain.Rocket) *dto.RocketResponse {
	return &dto.RocketResponse{
		RocketID:     r.ID,
		SerialNumber: r.SerialNumber,
		ProjectName:  r.Name,
		Status:       string(r.Status),
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
