// Package slack posts assistant notifications to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pantryassistant"
)

const (
	botName  = "Pantry Assistant"
	botEmoji = ":shopping_trolley:"

	// Slack answers a rejected payload with a short plain-text reason.
	maxErrorBody = 512
)

// webhookPayload is the subset of the incoming-webhook message format the
// assistant sends.
type webhookPayload struct {
	Channel   string `json:"channel,omitempty"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
}

// WebhookError is returned when Slack rejects a message.
type WebhookError struct {
	StatusCode int
	Reason     string
}

func (e *WebhookError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("slack webhook returned %d", e.StatusCode)
	}
	return fmt.Sprintf("slack webhook returned %d: %s", e.StatusCode, e.Reason)
}

type Client struct {
	webhookURL string
	httpClient pantryassistant.HTTPClient
}

var _ pantryassistant.SlackClient = (*Client)(nil)

func NewClient(webhookURL string, httpClient pantryassistant.HTTPClient) *Client {
	return &Client{webhookURL: webhookURL, httpClient: httpClient}
}

// PostMessage sends text to channel. An empty channel uses the webhook's
// default channel.
func (c *Client) PostMessage(ctx context.Context, channel string, text string) error {
	payload, err := json.Marshal(webhookPayload{
		Channel:   channel,
		Text:      text,
		Username:  botName,
		IconEmoji: botEmoji,
	})
	if err != nil {
		return fmt.Errorf("encode slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &WebhookError{StatusCode: resp.StatusCode, Reason: string(bytes.TrimSpace(body))}
	}
	return nil
}
