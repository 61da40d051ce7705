package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// TLS policies accepted by SMTPConfig.TLS.
const (
	TLSMandatory     = "mandatory"
	TLSOpportunistic = "opportunistic"
	TLSNone          = "none"
)

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string // empty disables SMTP AUTH
	Password string
	TLS      string
	Timeout  time.Duration
}

// SMTPTransport delivers mail through an SMTP relay.
type SMTPTransport struct {
	cfg SMTPConfig
}

// NewSMTPTransport creates an SMTP transport. The connection is opened per
// message.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg}
}

func (t *SMTPTransport) Name() string { return "smtp" }

// Send dials the relay, delivers the message and closes the connection.
func (t *SMTPTransport) Send(ctx context.Context, env *Envelope) error {
	msg, err := buildMsg(env)
	if err != nil {
		return err
	}

	client, err := t.newClient()
	if err != nil {
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send via %s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}
	return nil
}

// Check connects to the relay, negotiating TLS and auth, without sending.
func (t *SMTPTransport) Check(ctx context.Context) error {
	client, err := t.newClient()
	if err != nil {
		return err
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s:%d: %w", t.cfg.Host, t.cfg.Port, err)
	}
	return client.Close()
}

func (t *SMTPTransport) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(t.cfg.Port),
		mail.WithTLSPolicy(tlsPolicy(t.cfg.TLS)),
	}
	if t.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(t.cfg.Timeout))
	}
	if t.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(t.cfg.Username),
			mail.WithPassword(t.cfg.Password),
		)
	}

	client, err := mail.NewClient(t.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client, nil
}

func tlsPolicy(name string) mail.TLSPolicy {
	switch name {
	case TLSOpportunistic:
		return mail.TLSOpportunistic
	case TLSNone:
		return mail.NoTLS
	default:
		return mail.TLSMandatory
	}
}

// buildMsg converts an envelope to a MIME message with an HTML body and a
// plain-text alternative.
func buildMsg(env *Envelope) (*mail.Msg, error) {
	if env.To.Email == "" {
		return nil, ErrNoRecipient
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(env.From.Name, env.From.Email); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(env.To.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if env.ReplyTo.Email != "" {
		if err := msg.ReplyToFormat(env.ReplyTo.Name, env.ReplyTo.Email); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	msg.Subject(env.Subject)
	msg.SetBodyString(mail.TypeTextHTML, env.HTML)
	if env.Text != "" {
		msg.AddAlternativeString(mail.TypeTextPlain, env.Text)
	}
	return msg, nil
}
