package mailer

import (
	"context"
	"fmt"
	"os"
)

// SendmailTransport pipes mail to the local mail agent.
type SendmailTransport struct {
	path string
}

// NewSendmailTransport creates a transport invoking the sendmail binary at path.
func NewSendmailTransport(path string) *SendmailTransport {
	return &SendmailTransport{path: path}
}

func (t *SendmailTransport) Name() string { return "sendmail" }

func (t *SendmailTransport) Send(ctx context.Context, env *Envelope) error {
	msg, err := buildMsg(env)
	if err != nil {
		return err
	}
	if err := msg.WriteToSendmailWithContext(ctx, t.path); err != nil {
		return fmt.Errorf("sendmail %s: %w", t.path, err)
	}
	return nil
}

// Check verifies the sendmail binary exists and is executable.
func (t *SendmailTransport) Check(ctx context.Context) error {
	info, err := os.Stat(t.path)
	if err != nil {
		return fmt.Errorf("sendmail binary: %w", err)
	}
	if info.IsDir() || info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("sendmail binary %s is not executable", t.path)
	}
	return nil
}
