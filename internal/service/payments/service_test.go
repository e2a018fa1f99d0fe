package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	paymentRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/payment"
	requestRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/servicerequest"
	"github.com/ruedapp/RuedApp-CoreService/internal/integrations/paymentgateway"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments/models"
	"github.com/ruedapp/RuedApp-CoreService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakePaymentRepo struct {
	rows      map[string]*domain.Payment
	createErr error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{rows: map[string]*domain.Payment{}}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	row := *p
	f.rows[p.ID] = &row
	return nil
}

func (f *fakePaymentRepo) GetByIntentID(_ context.Context, intentID string) (*domain.Payment, error) {
	row, ok := f.rows[intentID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	snapshot := *row
	return &snapshot, nil
}

func (f *fakePaymentRepo) SetStatus(_ context.Context, intentID string, from, to domain.PaymentStatus) (bool, error) {
	row, ok := f.rows[intentID]
	if !ok || row.Status != from {
		return false, nil
	}
	row.Status = to
	return true, nil
}

func (f *fakePaymentRepo) SetRefunded(_ context.Context, intentID string, refundAmount float64) error {
	row, ok := f.rows[intentID]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	row.Status = domain.PaymentRefunded
	row.RefundAmount = &refundAmount
	return nil
}

type fakeRequestRepo struct {
	request       *domain.ServiceRequest
	paidCalls     int
	refundedCalls int
}

func (f *fakeRequestRepo) GetByID(_ context.Context, _ int64) (*domain.ServiceRequest, error) {
	if f.request == nil {
		return nil, requestRepo.ErrRequestNotFound
	}
	return f.request, nil
}

func (f *fakeRequestRepo) MarkPaid(_ context.Context, _ int64) error {
	f.paidCalls++
	return nil
}

func (f *fakeRequestRepo) MarkRefunded(_ context.Context, _ int64) error {
	f.refundedCalls++
	return nil
}

type fakeGateway struct {
	intent     *paymentgateway.Intent
	intentErr  error
	refund     *paymentgateway.Refund
	refundErr  error
	event      *paymentgateway.WebhookEvent
	verifyErr  error
	lastAmount int64
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64, _, _ string, _ map[string]string) (*paymentgateway.Intent, error) {
	f.lastAmount = amount
	return f.intent, f.intentErr
}

func (f *fakeGateway) CreateRefund(_ context.Context, _ string, _ *int64, _ string) (*paymentgateway.Refund, error) {
	return f.refund, f.refundErr
}

func (f *fakeGateway) VerifyWebhookSignature(_ []byte, _ string, _ time.Time) (*paymentgateway.WebhookEvent, error) {
	return f.event, f.verifyErr
}

type fakeOutboxRepo struct {
	titles []string
}

func (f *fakeOutboxRepo) Enqueue(_ context.Context, _ string, _ int64, title, _ string) error {
	f.titles = append(f.titles, title)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc      *Service
	payments *fakePaymentRepo
	requests *fakeRequestRepo
	gateway  *fakeGateway
	outbox   *fakeOutboxRepo
}

func newFixture() *fixture {
	f := &fixture{
		payments: newFakePaymentRepo(),
		requests: &fakeRequestRepo{request: &domain.ServiceRequest{
			ID:          10,
			UserID:      100,
			ProviderID:  3,
			Status:      domain.StatusConfirmed,
			TotalAmount: 80000,
		}},
		gateway: &fakeGateway{
			intent: &paymentgateway.Intent{ID: "pi_1", ClientSecret: "pi_1_secret"},
			refund: &paymentgateway.Refund{ID: "re_1", IntentID: "pi_1", Status: "succeeded"},
		},
		outbox: &fakeOutboxRepo{},
	}
	f.svc = NewService(f.payments, f.requests, f.gateway, f.outbox, passthroughTxManager{}, noopLogger{})
	return f
}

func (f *fixture) seedPayment(status domain.PaymentStatus) {
	f.payments.rows["pi_1"] = &domain.Payment{
		ID:               "pi_1",
		ServiceRequestID: 10,
		ProviderID:       3,
		CustomerID:       100,
		Amount:           80000,
		Currency:         domain.DefaultCurrency,
		Status:           status,
	}
}

func intentRequest(amount float64) *models.CreateIntentRequest {
	return &models.CreateIntentRequest{
		CustomerID:       100,
		ProviderID:       3,
		ServiceRequestID: 10,
		Amount:           amount,
	}
}

func succeededEvent(intentID string) *paymentgateway.WebhookEvent {
	ev := &paymentgateway.WebhookEvent{ID: "evt_1", Type: string(domain.EventPaymentSucceeded)}
	ev.Data.Object.ID = intentID
	return ev
}

func TestCreateIntent(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateIntent(context.Background(), intentRequest(80000))
	require.NoError(t, err)
	assert.Equal(t, "pi_1", resp.IntentID)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)
	assert.Equal(t, int64(80000), f.gateway.lastAmount)

	row := f.payments.rows["pi_1"]
	require.NotNil(t, row)
	assert.Equal(t, domain.PaymentPending, row.Status)
	assert.Equal(t, int64(10), row.ServiceRequestID)
}

func TestCreateIntentAmountMismatch(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateIntent(context.Background(), intentRequest(79000))
	require.ErrorIs(t, err, ErrAmountMismatch)
}

// Sub-peso drift from client-side rounding stays within tolerance.
func TestCreateIntentAmountWithinTolerance(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateIntent(context.Background(), intentRequest(80000+domain.AmountTolerance))
	require.NoError(t, err)
}

func TestCreateIntentWrongCustomer(t *testing.T) {
	f := newFixture()

	req := intentRequest(80000)
	req.CustomerID = 999
	_, err := f.svc.CreateIntent(context.Background(), req)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateIntentDeclined(t *testing.T) {
	f := newFixture()
	f.gateway.intent = nil
	f.gateway.intentErr = paymentgateway.ErrDeclined

	_, err := f.svc.CreateIntent(context.Background(), intentRequest(80000))
	require.ErrorIs(t, err, ErrPaymentDeclined)
}

// A failed ledger insert must not void the processor intent.
func TestCreateIntentSurvivesLedgerInsertFailure(t *testing.T) {
	f := newFixture()
	f.payments.createErr = assert.AnError

	resp, err := f.svc.CreateIntent(context.Background(), intentRequest(80000))
	require.NoError(t, err)
	assert.Equal(t, "pi_1", resp.IntentID)
}

func TestConfirmIsIdempotent(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentPending)

	resp, err := f.svc.Confirm(context.Background(), "pi_1", &models.ConfirmRequest{ServiceRequestID: 10})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompleted), resp.Status)

	// Replay converges on the same state without repeating side effects.
	resp, err = f.svc.Confirm(context.Background(), "pi_1", &models.ConfirmRequest{ServiceRequestID: 10})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompleted), resp.Status)

	assert.Equal(t, domain.PaymentCompleted, f.payments.rows["pi_1"].Status)
	assert.Equal(t, 1, f.requests.paidCalls)
	assert.Equal(t, []string{"Pago recibido"}, f.outbox.titles)
}

func TestConfirmWrongRequest(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentPending)

	_, err := f.svc.Confirm(context.Background(), "pi_1", &models.ConfirmRequest{ServiceRequestID: 99})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirmUnknownIntent(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Confirm(context.Background(), "pi_missing", &models.ConfirmRequest{ServiceRequestID: 10})
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

// The webhook path landing after the direct confirm path is a no-op.
func TestWebhookAfterConfirmDoesNotDoubleApply(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentPending)

	_, err := f.svc.Confirm(context.Background(), "pi_1", &models.ConfirmRequest{ServiceRequestID: 10})
	require.NoError(t, err)

	f.gateway.event = succeededEvent("pi_1")
	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "t=1,v1=sig"))

	assert.Equal(t, 1, f.requests.paidCalls)
	assert.Equal(t, []string{"Pago recibido"}, f.outbox.titles)
}

func TestWebhookInvalidSignature(t *testing.T) {
	f := newFixture()
	f.gateway.verifyErr = assert.AnError

	err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "bogus")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

// Events for intents the ledger never recorded are acknowledged so the
// processor stops redelivering them.
func TestWebhookUnknownIntentIsAcknowledged(t *testing.T) {
	f := newFixture()
	f.gateway.event = succeededEvent("pi_ghost")

	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "t=1,v1=sig"))
	assert.Equal(t, 0, f.requests.paidCalls)
}

func TestWebhookIgnoresUnknownEventType(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentPending)
	ev := succeededEvent("pi_1")
	ev.Type = "invoice.created"
	f.gateway.event = ev

	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "t=1,v1=sig"))
	assert.Equal(t, domain.PaymentPending, f.payments.rows["pi_1"].Status)
}

func TestRefund(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentCompleted)

	resp, err := f.svc.Refund(context.Background(), "pi_1", &models.RefundRequest{ServiceRequestID: 10})
	require.NoError(t, err)
	assert.Equal(t, "re_1", resp.RefundID)
	assert.Equal(t, 80000.0, resp.Amount)

	row := f.payments.rows["pi_1"]
	assert.Equal(t, domain.PaymentRefunded, row.Status)
	require.NotNil(t, row.RefundAmount)
	assert.Equal(t, 80000.0, *row.RefundAmount)
	assert.Equal(t, 1, f.requests.refundedCalls)
	assert.Equal(t, []string{"Reembolso procesado"}, f.outbox.titles)
}

func TestRefundPartialAmount(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentCompleted)

	resp, err := f.svc.Refund(context.Background(), "pi_1", &models.RefundRequest{
		ServiceRequestID: 10,
		Amount:           ptr.Ptr(30000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 30000.0, resp.Amount)
	assert.Equal(t, 30000.0, *f.payments.rows["pi_1"].RefundAmount)
}

func TestRefundAmountOutOfRange(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentCompleted)

	_, err := f.svc.Refund(context.Background(), "pi_1", &models.RefundRequest{
		ServiceRequestID: 10,
		Amount:           ptr.Ptr(90000.0),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.requests.refundedCalls)
}

// A success event replayed after the refund settled must not resurrect the
// payment.
func TestLateSuccessAfterRefund(t *testing.T) {
	f := newFixture()
	f.seedPayment(domain.PaymentRefunded)

	f.gateway.event = succeededEvent("pi_1")
	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "t=1,v1=sig"))

	assert.Equal(t, domain.PaymentRefunded, f.payments.rows["pi_1"].Status)
	assert.Equal(t, 0, f.requests.paidCalls)
}
