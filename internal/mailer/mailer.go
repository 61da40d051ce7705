// Package mailer delivers rendered contact e-mails through a pluggable
// transport.
//
// This package handles:
// - Building the outgoing Envelope from configuration and the submission
// - The Transport abstraction and its implementations (smtp, sendmail, api, slack, log)
// - Transport metrics via the Instrumented wrapper
// - Optional reachability checks for readiness probes
//
// A Sender makes exactly one Transport.Send call per submission. There is no
// retry and no queue; the caller decides what a failure means to the user.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/localcarpetfitter/sitemailer/internal/contact"
	"github.com/localcarpetfitter/sitemailer/internal/message"
	"go.uber.org/zap"
)

// ErrNoRecipient is returned when an envelope has no recipient address.
var ErrNoRecipient = errors.New("envelope has no recipient")

// Address is a mailbox with an optional display name.
type Address struct {
	Email string
	Name  string
}

// Envelope is a transport-neutral outgoing e-mail.
type Envelope struct {
	From    Address
	To      Address
	ReplyTo Address
	Subject string
	HTML    string
	Text    string // plain-text alternative
}

// Transport delivers one envelope.
type Transport interface {
	// Name identifies the transport in logs and metrics.
	Name() string
	Send(ctx context.Context, env *Envelope) error
}

// Checker is implemented by transports that can verify reachability
// without sending mail.
type Checker interface {
	Check(ctx context.Context) error
}

// Sender turns a rendered submission into an envelope and hands it to the
// transport.
type Sender struct {
	transport Transport
	from      Address
	to        string
	logger    *zap.Logger
}

// NewSender creates a Sender. from and to are fixed for every message.
func NewSender(transport Transport, from Address, to string, logger *zap.Logger) *Sender {
	return &Sender{
		transport: transport,
		from:      from,
		to:        to,
		logger:    logger,
	}
}

// Envelope builds the outgoing message. Reply-to carries the submitter's raw
// address and name so replies reach them directly.
func (s *Sender) Envelope(sub *contact.Submission, content *message.Content) *Envelope {
	return &Envelope{
		From:    s.from,
		To:      Address{Email: s.to},
		ReplyTo: Address{Email: sub.Email, Name: sub.FullName()},
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
	}
}

// Send delivers the message with a single transport call.
func (s *Sender) Send(ctx context.Context, sub *contact.Submission, content *message.Content) error {
	env := s.Envelope(sub, content)
	if env.To.Email == "" {
		return ErrNoRecipient
	}

	if err := s.transport.Send(ctx, env); err != nil {
		return fmt.Errorf("%s transport: %w", s.transport.Name(), err)
	}

	s.logger.Info("contact e-mail sent",
		zap.String("transport", s.transport.Name()),
		zap.String("service_type", sub.ServiceType),
	)
	return nil
}

// TransportName returns the name of the underlying transport.
func (s *Sender) TransportName() string {
	return s.transport.Name()
}
