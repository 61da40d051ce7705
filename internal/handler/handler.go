// Package handler serves the contact form endpoint.
//
// A request runs validate → render → dispatch. Validation failures are
// answered 400 without rendering; rendering or transport failures are logged
// and answered 500 with a fixed message naming the fallback phone number.
// Internal error text never reaches the response.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/localcarpetfitter/sitemailer/internal/contact"
	"github.com/localcarpetfitter/sitemailer/internal/message"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"github.com/localcarpetfitter/sitemailer/pkg/metrics"
	"github.com/localcarpetfitter/sitemailer/pkg/middleware"
	"go.uber.org/zap"
)

// Dispatcher delivers a rendered submission. *mailer.Sender implements it.
type Dispatcher interface {
	Send(ctx context.Context, sub *contact.Submission, content *message.Content) error
}

// RenderFunc renders a submission into an e-mail.
type RenderFunc func(sub *contact.Submission) (*message.Content, error)

// Handler serves contact form posts. It holds no per-request state and is
// safe for concurrent use.
type Handler struct {
	dispatcher    Dispatcher
	validator     *contact.Validator
	render        RenderFunc
	fallbackPhone string
	logger        *zap.Logger
	metrics       *metrics.Metrics
}

// NewHandler creates the contact handler. fallbackPhone is quoted to the
// user when delivery fails.
func NewHandler(dispatcher Dispatcher, fallbackPhone string, logger *zap.Logger) *Handler {
	return &Handler{
		dispatcher:    dispatcher,
		validator:     contact.NewValidator(),
		render:        message.Render,
		fallbackPhone: fallbackPhone,
		logger:        logger,
	}
}

// SetRenderer replaces the renderer, mainly for tests.
func (h *Handler) SetRenderer(render RenderFunc) {
	h.render = render
}

// HandleContact handles contact form posts
func (h *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.recordSubmission("rejected_method")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(constants.MessageDirectAccess))
		return
	}

	logger := h.logger.With(zap.String("request_id", middleware.RequestIDFromContext(r.Context())))

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxContactBodyBytes)
	if err := parseForm(r); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("contact body too large", zap.Int64("limit", tooLarge.Limit))
			h.recordSubmission("invalid")
			h.writeResult(w, http.StatusRequestEntityTooLarge, false, constants.MessageTooLarge)
			return
		}
		logger.Warn("failed to parse contact form", zap.Error(err))
		h.recordSubmission("invalid")
		h.writeResult(w, http.StatusBadRequest, false, constants.MessageMissingFields)
		return
	}

	sub := contact.FromForm(r.PostForm)

	if err := h.validator.Validate(sub); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			for _, field := range verr.Fields {
				h.recordValidationError(field)
			}
		}
		logger.Info("contact submission rejected", zap.Error(err))
		h.recordSubmission("invalid")
		h.writeResult(w, http.StatusBadRequest, false, err.Error())
		return
	}

	content, err := h.render(sub)
	if err != nil {
		logger.Error("failed to render contact e-mail", zap.Error(err))
		h.recordSubmission("failed")
		h.writeFailure(w)
		return
	}

	if err := h.dispatcher.Send(r.Context(), sub, content); err != nil {
		logger.Error("email sending failed",
			zap.Error(err),
			zap.String("service_type", sub.ServiceType),
		)
		h.recordSubmission("failed")
		h.writeFailure(w)
		return
	}

	h.recordSubmission("sent")
	h.writeResult(w, http.StatusOK, true, constants.MessageSent)
}

// parseForm reads an urlencoded or multipart body into r.PostForm. Browsers
// posting FormData send multipart.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(constants.MaxContactBodyBytes)
	}
	return r.ParseForm()
}

func (h *Handler) writeFailure(w http.ResponseWriter) {
	h.writeResult(w, http.StatusInternalServerError, false, fmt.Sprintf(constants.MessageSendFailedFormat, h.fallbackPhone))
}

func (h *Handler) writeResult(w http.ResponseWriter, statusCode int, success bool, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(contact.Result{Success: success, Message: msg}); err != nil {
		h.logger.Error("failed to encode contact response", zap.Error(err))
	}
}
