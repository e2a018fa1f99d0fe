package paymentgateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const testSecret = "whsec_test"

func signPayload(t *testing.T, payload []byte, ts time.Time) string {
	t.Helper()
	tsStr := fmt.Sprintf("%d", ts.Unix())
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(tsStr))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", tsStr, hex.EncodeToString(mac.Sum(nil)))
}

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "sk_test", testSecret, 5*time.Second, noopLogger{})
}

func TestVerifyWebhookSignature(t *testing.T) {
	c := newTestClient("")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1"}}}`)

	event, err := c.VerifyWebhookSignature(payload, signPayload(t, payload, now), now)
	require.NoError(t, err)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Equal(t, "pi_1", event.Data.Object.ID)
}

func TestVerifyWebhookSignatureRejectsTampering(t *testing.T) {
	c := newTestClient("")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)

	header := signPayload(t, payload, now)

	_, err := c.VerifyWebhookSignature([]byte(`{"id":"evt_2"}`), header, now)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhookSignatureRejectsStaleTimestamp(t *testing.T) {
	c := newTestClient("")
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"id":"evt_1"}`)

	header := signPayload(t, payload, now.Add(-6*time.Minute))

	_, err := c.VerifyWebhookSignature(payload, header, now)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyWebhookSignatureRejectsMalformedHeader(t *testing.T) {
	c := newTestClient("")

	_, err := c.VerifyWebhookSignature([]byte("{}"), "v1=deadbeef", time.Now())
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "80000", r.PostForm.Get("amount"))
		assert.Equal(t, "cop", r.PostForm.Get("currency"))
		assert.Equal(t, "10", r.PostForm.Get("metadata[service_request_id]"))

		fmt.Fprint(w, `{"id":"pi_1","client_secret":"pi_1_secret","status":"requires_payment_method"}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	intent, err := c.CreateIntent(context.Background(), 80000, "cop", "Solicitud #10",
		map[string]string{"service_request_id": "10"})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
}

func TestCreateIntentDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.CreateIntent(context.Background(), 80000, "cop", "", nil)
	require.ErrorIs(t, err, ErrDeclined)
}

func TestCreateRefundIntentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.CreateRefund(context.Background(), "pi_missing", nil, "")
	require.ErrorIs(t, err, ErrIntentNotFound)
}
