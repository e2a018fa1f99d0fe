package create_request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	providerRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/provider"
	vehicleRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/vehicle"
	"github.com/ruedapp/RuedApp-CoreService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeVehicleRepo struct {
	vehicle *domain.Vehicle
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, _ int64) (*domain.Vehicle, error) {
	if f.vehicle == nil {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	return f.vehicle, nil
}

type fakeProviderRepo struct {
	provider *domain.Provider
	service  *domain.ProviderService
}

func (f *fakeProviderRepo) GetByID(_ context.Context, _ int64) (*domain.Provider, error) {
	if f.provider == nil {
		return nil, providerRepo.ErrProviderNotFound
	}
	return f.provider, nil
}

func (f *fakeProviderRepo) GetProviderService(_ context.Context, _, _ int64) (*domain.ProviderService, error) {
	if f.service == nil {
		return nil, providerRepo.ErrServiceNotOffered
	}
	return f.service, nil
}

type fakeRequestRepo struct {
	created *domain.ServiceRequest
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	created := *req
	created.ID = 42
	f.created = &created
	return &created, nil
}

type enqueuedNotification struct {
	recipientType string
	recipientID   int64
	title         string
	body          string
}

type fakeOutboxRepo struct {
	enqueued []enqueuedNotification
}

func (f *fakeOutboxRepo) Enqueue(_ context.Context, recipientType string, recipientID int64, title, body string) error {
	f.enqueued = append(f.enqueued, enqueuedNotification{recipientType, recipientID, title, body})
	return nil
}

type passthroughTxManager struct {
	calls int
}

func (f *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fixture struct {
	uc       *UseCase
	vehicles *fakeVehicleRepo
	provs    *fakeProviderRepo
	requests *fakeRequestRepo
	outbox   *fakeOutboxRepo
	tx       *passthroughTxManager
}

func newFixture() *fixture {
	f := &fixture{
		vehicles: &fakeVehicleRepo{vehicle: &domain.Vehicle{
			ID:            7,
			OwnerID:       100,
			VehicleTypeID: 1,
			IsActive:      true,
		}},
		provs: &fakeProviderRepo{
			provider: &domain.Provider{ID: 3, IsActive: true},
			service: &domain.ProviderService{
				ProviderID:  3,
				ServiceID:   5,
				ServiceName: "Cambio de aceite",
				Price:       80000,
			},
		},
		requests: &fakeRequestRepo{},
		outbox:   &fakeOutboxRepo{},
		tx:       &passthroughTxManager{},
	}
	f.uc = NewUseCase(f.vehicles, f.provs, f.requests, f.outbox, f.tx, noopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:     100,
		ProviderID: 3,
		VehicleID:  7,
		ServiceID:  5,
	}
}

func TestExecuteHappyPath(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.Request.ID)
	assert.Equal(t, domain.StatusPending, resp.Request.Status)
	assert.Equal(t, 80000.0, resp.Request.EstimatedAmount)
	assert.Equal(t, 80000.0, resp.Request.TotalAmount)
	assert.Equal(t, "Cambio de aceite", resp.ServiceName)

	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.outbox.enqueued, 1)
	assert.Equal(t, "provider", f.outbox.enqueued[0].recipientType)
	assert.Equal(t, int64(3), f.outbox.enqueued[0].recipientID)
	assert.Equal(t, "Nueva solicitud de servicio", f.outbox.enqueued[0].title)
}

func TestExecuteVehicleMissing(t *testing.T) {
	f := newFixture()
	f.vehicles.vehicle = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrVehicleNotFound)
}

// A vehicle owned by someone else must be indistinguishable from a missing
// one.
func TestExecuteVehicleOwnedByOtherUser(t *testing.T) {
	f := newFixture()
	f.vehicles.vehicle.OwnerID = 999

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrVehicleNotFound)
	assert.Empty(t, f.outbox.enqueued)
}

func TestExecuteInactiveVehicle(t *testing.T) {
	f := newFixture()
	f.vehicles.vehicle.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestExecuteInactiveProvider(t *testing.T) {
	f := newFixture()
	f.provs.provider.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecuteServiceNotOffered(t *testing.T) {
	f := newFixture()
	f.provs.service = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecuteIncompatibleVehicleType(t *testing.T) {
	f := newFixture()
	f.provs.service.RequiredVehicleTypeID = ptr.Ptr(int64(2)) // motorcycle-only

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrIncompatibleVehicleType)
	assert.Nil(t, f.requests.created)
}

func TestExecuteRejectsInvalidIDs(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.VehicleID = 0
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteRejectsHalfCoordinates(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.LocationLat = ptr.Ptr(4.6)
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}
