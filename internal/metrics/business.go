package metrics

// Label values used by business counters
const (
	OperationCreate = "create"
	OperationUpdate = "update"

	ValidationTemplate   = "template"
	ValidationSubmission = "submission"
)

// IncrementTemplateSaved counts a committed template create or update
func (m *Metrics) IncrementTemplateSaved(operation string) {
	m.safeExecute("IncrementTemplateSaved", func() {
		m.TemplatesSavedTotal.WithLabelValues(operation).Inc()
	})
}

// IncrementFieldsReplaced counts a committed field list replacement
func (m *Metrics) IncrementFieldsReplaced() {
	m.safeExecute("IncrementFieldsReplaced", func() {
		m.TemplateFieldsReplaced.Inc()
	})
}

// IncrementStepRecorded counts a stored production step submission
func (m *Metrics) IncrementStepRecorded(operation string) {
	m.safeExecute("IncrementStepRecorded", func() {
		m.StepsRecordedTotal.WithLabelValues(operation).Inc()
	})
}

// IncrementValidationFailure counts a rejected definition or submission
func (m *Metrics) IncrementValidationFailure(kind string) {
	m.safeExecute("IncrementValidationFailure", func() {
		m.ValidationFailuresTotal.WithLabelValues(kind).Inc()
	})
}

// IncrementPayloadFallback counts a stored payload that decoded to raw_data
func (m *Metrics) IncrementPayloadFallback() {
	m.safeExecute("IncrementPayloadFallback", func() {
		m.PayloadFallbacksTotal.Inc()
	})
}

// IncrementApproval counts a recorded review decision
func (m *Metrics) IncrementApproval(status string) {
	m.safeExecute("IncrementApproval", func() {
		m.ApprovalsRecordedTotal.WithLabelValues(status).Inc()
	})
}
