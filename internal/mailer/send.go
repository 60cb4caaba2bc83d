package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/theopenlane/httpsling"
)

// emailsPath is the API path for sending an email
const emailsPath = "/emails"

// Email is a single outgoing message
type Email struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

// sendRequest is the request body of the email API
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
}

// sendResponse is the email API response
type sendResponse struct {
	ID string `json:"id"`
}

// Send delivers an email and returns the provider message ID
func (c *Client) Send(ctx context.Context, email Email) (string, error) {
	if len(email.To) == 0 {
		return "", ErrMissingRecipient
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.baseURL+emailsPath),
		httpsling.Post(),
		httpsling.BearerAuth(c.apiKey),
		httpsling.JSONBody(sendRequest{
			From:    c.from,
			To:      email.To,
			ReplyTo: c.replyTo,
			Subject: email.Subject,
			HTML:    email.HTML,
			Text:    email.Text,
		}),
		httpsling.WithHTTPClient(c.httpClient),
	)

	var out sendResponse

	resp, err := requester.ReceiveWithContext(ctx, &out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("%w: %w: status %d", ErrSendFailed, ErrUnexpectedStatus, resp.StatusCode)
	}

	return out.ID, nil
}
