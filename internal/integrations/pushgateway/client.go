// Package pushgateway is the client for the push-notification gateway.
// Only the outbox dispatcher talks to it; core operations never block on
// notification delivery.
package pushgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger is the logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Notification is a single push message.
type Notification struct {
	RecipientType string `json:"recipient_type"` // "user" or "provider"
	RecipientID   int64  `json:"recipient_id"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}

// Client sends push notifications through the gateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a push gateway client.
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send delivers one notification.
func (c *Client) Send(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: encode notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/notifications", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("pushgateway: send to %s id=%d failed: %v", n.RecipientType, n.RecipientID, err)
		return fmt.Errorf("%w: request failed: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrRecipientNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: unexpected status %d", ErrInternal, resp.StatusCode)
	}

	return nil
}
