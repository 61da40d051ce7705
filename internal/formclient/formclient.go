// Package formclient is the browser half of the contact pipeline: it checks
// required fields, posts the form and turns the server's Result into a
// notification.
package formclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/localcarpetfitter/sitemailer/internal/contact"
	"github.com/localcarpetfitter/sitemailer/internal/notify"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"go.uber.org/zap"
)

// ErrSubmitInFlight is returned when Submit is called while an earlier
// submission is still waiting for the server.
var ErrSubmitInFlight = errors.New("submission already in progress")

// Field is one form control.
type Field struct {
	Name     string
	Value    string
	Required bool
}

// Form is the contact form as seen by the submitter.
type Form interface {
	Fields() []Field
	MarkInvalid(name string, invalid bool)
	Reset()
}

// Validation is the outcome of checking a form's required fields.
type Validation struct {
	Valid   bool
	Invalid []string
}

// Validate checks that every required field is non-empty after trimming.
func Validate(fields []Field) Validation {
	v := Validation{Valid: true}
	for _, f := range fields {
		if f.Required && strings.TrimSpace(f.Value) == "" {
			v.Valid = false
			v.Invalid = append(v.Invalid, f.Name)
		}
	}
	return v
}

// Outcome describes how a Submit call ended.
type Outcome int

const (
	OutcomeInvalid Outcome = iota // stopped by local validation
	OutcomeSent
	OutcomeRejected // server answered success=false
	OutcomeFailed   // network or decoding failure
)

// Submitter posts the contact form to the server.
type Submitter struct {
	endpoint string
	client   *http.Client
	notifier notify.Notifier
	logger   *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewSubmitter creates a Submitter posting to endpoint. A nil client uses
// http.DefaultClient; a nil logger discards output.
func NewSubmitter(endpoint string, client *http.Client, notifier notify.Notifier, logger *zap.Logger) *Submitter {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		endpoint: endpoint,
		client:   client,
		notifier: notifier,
		logger:   logger,
	}
}

// InFlight reports whether a submission is waiting for the server.
func (s *Submitter) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Submit validates the form and, if it passes, posts it. The form is reset
// only when the server confirms delivery.
func (s *Submitter) Submit(ctx context.Context, form Form) (Outcome, error) {
	fields := form.Fields()

	result := Validate(fields)
	failed := make(map[string]bool, len(result.Invalid))
	for _, name := range result.Invalid {
		failed[name] = true
	}
	for _, f := range fields {
		if f.Required {
			form.MarkInvalid(f.Name, failed[f.Name])
		}
	}
	if !result.Valid {
		s.notifier.Notify(notify.KindError, constants.MessageMissingFields)
		return OutcomeInvalid, nil
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return OutcomeInvalid, ErrSubmitInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	res, err := s.post(ctx, fields)
	if err != nil {
		s.logger.Warn("contact submission failed", zap.Error(err))
		s.notifier.Notify(notify.KindError, constants.MessageNetworkFailure)
		return OutcomeFailed, err
	}

	if !res.Success {
		s.notifier.Notify(notify.KindError, res.Message)
		return OutcomeRejected, nil
	}

	s.notifier.Notify(notify.KindSuccess, res.Message)
	form.Reset()
	return OutcomeSent, nil
}

func (s *Submitter) post(ctx context.Context, fields []Field) (*contact.Result, error) {
	values := url.Values{}
	for _, f := range fields {
		values.Set(f.Name, f.Value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxContactBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// 400 and 500 still carry a Result; anything else is a failure
	var res contact.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if res.Message == "" {
		return nil, fmt.Errorf("empty result message (status %d)", resp.StatusCode)
	}
	return &res, nil
}
