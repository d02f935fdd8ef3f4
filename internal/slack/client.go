package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebhookClient posts messages to a Slack incoming webhook.
type WebhookClient struct {
	url  string
	http *http.Client
}

// NewWebhook creates a webhook client for the given endpoint URL.
func NewWebhook(webhookURL string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookClient{
		url:  strings.TrimSpace(webhookURL),
		http: &http.Client{Timeout: timeout},
	}
}

// Post delivers a single message. A non-success response returns an error
// carrying the status and response body for diagnostics.
func (c *WebhookClient) Post(ctx context.Context, msg Message) error {
	if c == nil || c.url == "" {
		return errors.New("slack: webhook URL not configured")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack: webhook failed: status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}
