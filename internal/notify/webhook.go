package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theopenlane/httpsling"
)

// Message is a Slack webhook payload; Text is the fallback shown in push notifications
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is a Block Kit layout block
type Block struct {
	Type   string       `json:"type"`
	Text   *TextObject  `json:"text,omitempty"`
	Fields []TextObject `json:"fields,omitempty"`
}

// TextObject is a plain_text or mrkdwn text element
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Send posts the message, retrying rate limited and server side failures
func (c *Client) Send(ctx context.Context, msg Message) error {
	var err error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		var wait time.Duration

		wait, err = c.post(ctx, msg)
		if err == nil || wait < 0 || attempt == c.attempts {
			return err
		}

		log.Debug().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("retrying slack notification")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrNotificationFailed, ctx.Err())
		case <-time.After(wait):
		}
	}

	return err
}

// post makes a single webhook call. A non-negative wait means the call may be retried after it.
func (c *Client) post(ctx context.Context, msg Message) (time.Duration, error) {
	resp, err := httpsling.MustNew(
		httpsling.URL(c.webhook),
		httpsling.Post(),
		httpsling.JSONBody(msg),
		httpsling.WithHTTPClient(c.httpClient),
	).SendWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return -1, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
		}

		return c.backoff, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	switch {
	case resp.StatusCode == http.StatusOK:
		return 0, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return c.retryAfter(resp.Header.Get("Retry-After")), fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return c.backoff, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	default:
		return -1, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}

// retryAfter reads a Retry-After header given in seconds
func (c *Client) retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return c.backoff
	}

	return min(time.Duration(secs)*time.Second, maxRetryWait)
}

func header(text string) Block {
	return Block{Type: "header", Text: &TextObject{Type: "plain_text", Text: text}}
}

func field(label, value string) TextObject {
	return TextObject{Type: "mrkdwn", Text: fmt.Sprintf("*%s*\n%s", label, value)}
}
