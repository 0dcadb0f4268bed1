/*
Package telegram delivers outbound replies through the Telegram Bot API.

PURPOSE:
  The Messenger collaborator: one call, sendMessage. Delivery is best
  effort - a failed send is logged by the caller and never retried, so a
  flaky Telegram connection cannot wedge command processing.

MESSAGE FORMAT:
  Replies use Markdown parse mode with link previews disabled, matching
  the backtick-quoted usage strings the bot renders.

SEE ALSO:
  - api package: the webhook handler, the only caller
*/
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultAPIBase is the production Bot API endpoint. Overridable for tests.
const DefaultAPIBase = "https://api.telegram.org"

// sendTimeout bounds each outbound delivery attempt.
const sendTimeout = 10 * time.Second

// Messenger sends one text message to one chat.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the real Bot API messenger.
type Client struct {
	token   string
	apiBase string
	http    *http.Client
}

// NewClient creates a messenger for the given bot token. apiBase may be
// empty to use the production endpoint.
func NewClient(token, apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		token:   token,
		apiBase: apiBase,
		http:    &http.Client{Timeout: sendTimeout},
	}
}

type sendMessageRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send posts one sendMessage call. The response body is drained and
// discarded; a non-2xx status is reported as an error for the caller to
// log.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "Markdown",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("encode sendMessage: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send message: telegram returned %s", resp.Status)
	}
	return nil
}

// =============================================================================
// RECORDER - Test messenger
// =============================================================================

// Recorder captures sent messages instead of delivering them.
type Recorder struct {
	Sent []SentMessage
	Err  error // returned from Send when set
}

type SentMessage struct {
	ChatID int64
	Text   string
}

func (r *Recorder) Send(_ context.Context, chatID int64, text string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Sent = append(r.Sent, SentMessage{ChatID: chatID, Text: text})
	return nil
}
