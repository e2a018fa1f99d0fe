package paymentgateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// signatureTolerance bounds how old a webhook timestamp may be before the
// delivery is rejected as a potential replay.
const signatureTolerance = 5 * time.Minute

// Logger is the logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the external payment processor. The processor is a black
// box to this service: intents and refunds are created remotely and the
// local ledger mirrors what it reports.
type Client struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	httpClient    *http.Client
	log           Logger
}

// NewClient creates a payment processor client.
func NewClient(baseURL, apiKey, webhookSecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateIntent registers a payment intent with the processor. Amount is in
// whole currency units; the processor API speaks the smallest unit, which
// for COP is the peso itself.
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	if description != "" {
		form.Set("description", description)
	}
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var intent Intent
	if err := c.post(ctx, "/v1/payment_intents", form, &intent); err != nil {
		return nil, err
	}

	c.log.Info("paymentgateway: created intent id=%s amount=%d %s", intent.ID, amount, currency)
	return &intent, nil
}

// GetIntent fetches the processor-side state of an intent.
func (c *Client) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/payment_intents/"+intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var intent Intent
	if err := c.do(req, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// CreateRefund refunds an intent, fully when amount is nil.
func (c *Client) CreateRefund(ctx context.Context, intentID string, amount *int64, reason string) (*Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", intentID)
	if amount != nil {
		form.Set("amount", strconv.FormatInt(*amount, 10))
	}
	if reason != "" {
		form.Set("reason", reason)
	}

	var refund Refund
	if err := c.post(ctx, "/v1/refunds", form, &refund); err != nil {
		return nil, err
	}

	c.log.Info("paymentgateway: created refund id=%s for intent=%s", refund.ID, intentID)
	return &refund, nil
}

// VerifyWebhookSignature authenticates a webhook delivery. The signature
// header carries "t=<unix>,v1=<hex hmac>" where the HMAC-SHA256 is computed
// over "<t>.<payload>" with the endpoint secret.
func (c *Client) VerifyWebhookSignature(payload []byte, sigHeader string, now time.Time) (*WebhookEvent, error) {
	var ts string
	var sig string
	for _, part := range strings.Split(sigHeader, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts = kv[1]
		case "v1":
			sig = kv[1]
		}
	}
	if ts == "" || sig == "" {
		return nil, fmt.Errorf("%w: malformed signature header", ErrInvalidSignature)
	}

	tsUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed timestamp", ErrInvalidSignature)
	}
	eventTime := time.Unix(tsUnix, 0)
	if now.Sub(eventTime) > signatureTolerance || eventTime.Sub(now) > signatureTolerance {
		return nil, fmt.Errorf("%w: timestamp outside tolerance", ErrInvalidSignature)
	}

	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return nil, ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: decode event: %v", ErrInvalidResponse, err)
	}

	return &event, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("paymentgateway: request to %s failed: %v", req.URL.Path, err)
		return fmt.Errorf("%w: request failed: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrInternal, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrIntentNotFound
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusConflict:
		return ErrDeclined
	case resp.StatusCode >= 400:
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
			c.log.Warn("paymentgateway: processor error on %s: %s", req.URL.Path, errResp.Error.Message)
			return fmt.Errorf("%w: %s", ErrInternal, errResp.Error.Message)
		}
		return fmt.Errorf("%w: unexpected status %d", ErrInternal, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
