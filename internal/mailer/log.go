package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogTransport writes messages to the logger instead of delivering them.
// Intended for local development.
type LogTransport struct {
	logger *zap.Logger
}

func NewLogTransport(logger *zap.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Name() string { return "log" }

func (t *LogTransport) Send(ctx context.Context, env *Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.logger.Info("mail not delivered (log transport)",
		zap.String("from", env.From.Email),
		zap.String("to", env.To.Email),
		zap.String("reply_to", env.ReplyTo.Email),
		zap.String("subject", env.Subject),
		zap.String("text", env.Text),
		zap.Int("html_bytes", len(env.HTML)),
	)
	return nil
}
