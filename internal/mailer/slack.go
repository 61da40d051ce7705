package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// SlackTransport posts submissions to a Slack incoming webhook instead of
// sending e-mail. The plain-text rendering is used as the message body.
type SlackTransport struct {
	webhookURL string
}

// NewSlackTransport creates a transport posting to webhookURL.
func NewSlackTransport(webhookURL string) *SlackTransport {
	return &SlackTransport{webhookURL: webhookURL}
}

func (t *SlackTransport) Name() string { return "slack" }

func (t *SlackTransport) Send(ctx context.Context, env *Envelope) error {
	msg := &slack.WebhookMessage{
		Text: env.Subject,
		Blocks: &slack.Blocks{
			BlockSet: slackBlocks(env),
		},
	}
	if err := slack.PostWebhookContext(ctx, t.webhookURL, msg); err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	return nil
}

// maxSectionText is Slack's limit for a section block's text.
const maxSectionText = 3000

func slackBlocks(env *Envelope) []slack.Block {
	body := escapeMrkdwn(env.Text)
	if limit := maxSectionText - 6; len([]rune(body)) > limit { // room for the code fence
		body = trimEntity(truncate(body, limit))
	}

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, truncate(env.Subject, 150), false, false),
	)
	section := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "```"+body+"```", false, false),
		nil, nil,
	)
	footer := slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, replyLink(env.ReplyTo.Email), false, false),
	)
	return []slack.Block{header, section, footer}
}

// mrkdwnEscaper applies Slack's control character escaping and replaces
// backticks so submitted text cannot close the code fence.
var mrkdwnEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"`", "\u02cb",
)

func escapeMrkdwn(s string) string {
	return mrkdwnEscaper.Replace(s)
}

// replyLink renders a mailto link, or the escaped address alone when it
// contains characters that would break the link syntax.
func replyLink(email string) string {
	if email == "" || strings.ContainsAny(email, "<>&|`") {
		return "Reply to " + escapeMrkdwn(email)
	}
	return fmt.Sprintf("Reply to <mailto:%s|%s>", email, email)
}

// trimEntity drops an escape sequence cut in half by truncation.
func trimEntity(s string) string {
	body := strings.TrimSuffix(s, "…")
	if i := strings.LastIndexByte(body, '&'); i >= 0 && !strings.Contains(body[i:], ";") {
		return body[:i] + "…"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
