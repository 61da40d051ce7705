package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/localcarpetfitter/sitemailer/pkg/constants"
)

// APIAddress is a mailbox in the mail API's JSON schema.
type APIAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// APISendRequest is the body of a transactional send request.
//
// The schema follows Brevo's POST /v3/smtp/email, which several providers
// accept unchanged.
type APISendRequest struct {
	Sender      APIAddress   `json:"sender"`
	To          []APIAddress `json:"to"`
	ReplyTo     *APIAddress  `json:"replyTo,omitempty"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
	TextContent string       `json:"textContent,omitempty"`
}

// APITransport sends mail through a JSON HTTP mail API.
type APITransport struct {
	apiKey     string
	sendURL    string
	accountURL string
	httpClient *http.Client
}

// NewAPITransport creates a mail API transport posting to sendURL and
// authenticating with apiKey.
func NewAPITransport(sendURL, apiKey string) *APITransport {
	return &APITransport{
		apiKey:     apiKey,
		sendURL:    sendURL,
		accountURL: accountURL(sendURL),
		httpClient: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
		},
	}
}

func (t *APITransport) Name() string { return "api" }

func (t *APITransport) Send(ctx context.Context, env *Envelope) error {
	if env.To.Email == "" {
		return ErrNoRecipient
	}

	req := APISendRequest{
		Sender:      APIAddress{Email: env.From.Email, Name: env.From.Name},
		To:          []APIAddress{{Email: env.To.Email, Name: env.To.Name}},
		Subject:     env.Subject,
		HTMLContent: env.HTML,
		TextContent: env.Text,
	}
	if env.ReplyTo.Email != "" {
		req.ReplyTo = &APIAddress{Email: env.ReplyTo.Email, Name: env.ReplyTo.Name}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := t.makeRequest(ctx, http.MethodPost, t.sendURL, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Check calls the account endpoint to verify the key and connectivity.
func (t *APITransport) Check(ctx context.Context) error {
	resp, err := t.makeRequest(ctx, http.MethodGet, t.accountURL, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// makeRequest creates and executes an HTTP request to the mail API.
//
// Returns the response for any 2xx status. Other statuses are returned as an
// error carrying the status code and response body.
func (t *APITransport) makeRequest(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("api-key", t.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("mail API error (status %d): failed to read response body: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("mail API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	return resp, nil
}

// accountURL derives the account endpoint from the send endpoint,
// e.g. https://api.brevo.com/v3/smtp/email -> https://api.brevo.com/v3/account.
func accountURL(sendURL string) string {
	if base, ok := strings.CutSuffix(strings.TrimRight(sendURL, "/"), "/smtp/email"); ok {
		return base + "/account"
	}
	return sendURL
}
