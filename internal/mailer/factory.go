package mailer

import (
	"fmt"

	"github.com/localcarpetfitter/sitemailer/pkg/config"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"go.uber.org/zap"
)

// NewTransport creates the transport selected by cfg.MailTransport.
func NewTransport(cfg *config.Config, logger *zap.Logger) (Transport, error) {
	switch cfg.MailTransport {
	case config.TransportSMTP:
		return NewSMTPTransport(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			TLS:      cfg.SMTPTLS,
			Timeout:  constants.DefaultSMTPTimeout,
		}), nil
	case config.TransportSendmail:
		return NewSendmailTransport(cfg.SendmailPath), nil
	case config.TransportAPI:
		return NewAPITransport(cfg.MailAPIURL, cfg.MailAPIKey), nil
	case config.TransportSlack:
		return NewSlackTransport(cfg.SlackWebhookURL), nil
	case config.TransportLog:
		return NewLogTransport(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.MailTransport)
	}
}

// NewSenderFromConfig wires the configured transport, metrics wrapper and
// fixed addresses into a Sender.
func NewSenderFromConfig(cfg *config.Config, transport Transport, logger *zap.Logger) *Sender {
	return NewSender(transport,
		Address{Email: cfg.MailFromAddress, Name: cfg.MailFromName},
		cfg.MailTo,
		logger,
	)
}
