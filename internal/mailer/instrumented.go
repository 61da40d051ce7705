package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/localcarpetfitter/sitemailer/pkg/metrics"
)

// Instrumented records metrics for every call to the wrapped transport.
type Instrumented struct {
	transport Transport
	metrics   *metrics.Metrics
}

// NewInstrumented wraps t. A nil metrics instance disables recording.
func NewInstrumented(t Transport, m *metrics.Metrics) *Instrumented {
	return &Instrumented{transport: t, metrics: m}
}

func (i *Instrumented) Name() string { return i.transport.Name() }

func (i *Instrumented) Send(ctx context.Context, env *Envelope) error {
	start := time.Now()
	err := i.transport.Send(ctx, env)
	i.record("send", start, err)
	return err
}

// Check probes the wrapped transport. Transports without a reachability
// check always succeed.
func (i *Instrumented) Check(ctx context.Context) error {
	checker, ok := i.transport.(Checker)
	if !ok {
		return nil
	}
	start := time.Now()
	err := checker.Check(ctx)
	i.record("check", start, err)
	return err
}

// Unwrap returns the wrapped transport.
func (i *Instrumented) Unwrap() Transport { return i.transport }

// AsChecker returns t as a Checker if it, or the transport it wraps,
// supports reachability checks.
func AsChecker(t Transport) (Checker, bool) {
	if inst, ok := t.(*Instrumented); ok {
		if _, ok := inst.transport.(Checker); ok {
			return inst, true
		}
		return nil, false
	}
	c, ok := t.(Checker)
	return c, ok
}

// record records metrics for a transport operation
func (i *Instrumented) record(operation string, startTime time.Time, err error) {
	if i.metrics == nil {
		return
	}

	name := i.transport.Name()
	duration := time.Since(startTime).Seconds()
	i.metrics.TransportRequestDuration.WithLabelValues(name, operation).Observe(duration)

	status := "success"
	if err != nil {
		status = "error"
		i.metrics.TransportErrors.WithLabelValues(name, operation, errorType(err)).Inc()
	}

	i.metrics.TransportRequestsTotal.WithLabelValues(name, operation, status).Inc()
}

func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrNoRecipient):
		return "config"
	default:
		return "transport_error"
	}
}
