package handler

import (
	"github.com/localcarpetfitter/sitemailer/pkg/metrics"
)

// SetMetrics sets the metrics instance for the handler
func (h *Handler) SetMetrics(m *metrics.Metrics) {
	h.metrics = m
}

// recordSubmission records the outcome of a contact request
func (h *Handler) recordSubmission(status string) {
	if h.metrics != nil {
		h.metrics.ContactSubmissionsTotal.WithLabelValues(status).Inc()
	}
}

// recordValidationError records metrics for field validation errors
func (h *Handler) recordValidationError(field string) {
	if h.metrics != nil {
		h.metrics.ValidationErrorsTotal.WithLabelValues(field).Inc()
	}
}
