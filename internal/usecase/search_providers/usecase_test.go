package search_providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/pkg/ptr"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeProviderRepo struct {
	providers []*domain.Provider
	err       error
}

func (f *fakeProviderRepo) ListActive(_ context.Context, _, _ *int64) ([]*domain.Provider, error) {
	return f.providers, f.err
}

// Bogotá city centre.
const (
	originLat = 4.60971
	originLng = -74.08175
)

func provider(id int64, name string, lat, lng float64) *domain.Provider {
	return &domain.Provider{
		ID:           id,
		BusinessName: name,
		Latitude:     &lat,
		Longitude:    &lng,
		IsActive:     true,
	}
}

func TestHaversineKm(t *testing.T) {
	// Same point is zero.
	assert.Equal(t, 0.0, haversineKm(originLat, originLng, originLat, originLng))

	// Symmetric in its arguments.
	d1 := haversineKm(originLat, originLng, 4.7, -74.1)
	d2 := haversineKm(4.7, -74.1, originLat, originLng)
	assert.InDelta(t, d1, d2, 1e-9)

	// Bogotá to Medellín is roughly 245 km great-circle.
	d := haversineKm(originLat, originLng, 6.24420, -75.57364)
	assert.InDelta(t, 245, d, 10)
}

func TestExecuteFiltersAndSorts(t *testing.T) {
	repo := &fakeProviderRepo{providers: []*domain.Provider{
		// ~10 km, ~0 km and ~28 km from the origin, plus one provider
		// without coordinates.
		provider(1, "Taller Norte", 4.70, -74.08),
		provider(2, "Taller Centro", 4.6098, -74.0818),
		provider(3, "Taller Chía", 4.86, -74.05),
		{ID: 4, BusinessName: "Sin ubicación", IsActive: true},
	}}
	uc := NewUseCase(repo, noopLogger{})

	result, err := uc.Execute(context.Background(), &Request{
		Latitude:  originLat,
		Longitude: originLng,
		RadiusKm:  ptr.Ptr(15.0),
	})
	require.NoError(t, err)

	require.Len(t, result.Providers, 2)
	assert.Equal(t, int64(2), result.Providers[0].ID)
	assert.Equal(t, int64(1), result.Providers[1].ID)
	assert.LessOrEqual(t, result.Providers[0].DistanceKm, result.Providers[1].DistanceKm)

	assert.Equal(t, 2, result.Stats.TotalFound)
	require.NotNil(t, result.Stats.ClosestKm)
	require.NotNil(t, result.Stats.FurthestKm)
	assert.Equal(t, result.Providers[0].DistanceKm, *result.Stats.ClosestKm)
	assert.Equal(t, result.Providers[1].DistanceKm, *result.Stats.FurthestKm)
}

func TestExecuteDefaultRadius(t *testing.T) {
	repo := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, "Cerca", 4.62, -74.08), // ~1 km, inside default 10 km
		provider(2, "Lejos", 4.86, -74.05), // ~28 km, outside
	}}
	uc := NewUseCase(repo, noopLogger{})

	result, err := uc.Execute(context.Background(), &Request{
		Latitude:  originLat,
		Longitude: originLng,
	})
	require.NoError(t, err)
	require.Len(t, result.Providers, 1)
	assert.Equal(t, int64(1), result.Providers[0].ID)
}

func TestExecuteZeroRadiusKeepsExactMatches(t *testing.T) {
	repo := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, "En el origen", originLat, originLng),
		provider(2, "Al lado", 4.6098, -74.0818),
	}}
	uc := NewUseCase(repo, noopLogger{})

	result, err := uc.Execute(context.Background(), &Request{
		Latitude:  originLat,
		Longitude: originLng,
		RadiusKm:  ptr.Ptr(0.0),
	})
	require.NoError(t, err)
	require.Len(t, result.Providers, 1)
	assert.Equal(t, int64(1), result.Providers[0].ID)
	assert.Equal(t, 0.0, result.Providers[0].DistanceKm)
}

func TestExecuteNegativeRadiusReturnsEmpty(t *testing.T) {
	repo := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, "En el origen", originLat, originLng),
	}}
	uc := NewUseCase(repo, noopLogger{})

	result, err := uc.Execute(context.Background(), &Request{
		Latitude:  originLat,
		Longitude: originLng,
		RadiusKm:  ptr.Ptr(-1.0),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Providers)
	assert.Equal(t, 0, result.Stats.TotalFound)
	assert.Nil(t, result.Stats.AverageDistanceKm)
}

// Stats describe the full filtered set even when the page is truncated.
func TestExecuteLimitTruncatesAfterStats(t *testing.T) {
	repo := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, "A", 4.61, -74.08),
		provider(2, "B", 4.62, -74.08),
		provider(3, "C", 4.63, -74.08),
	}}
	uc := NewUseCase(repo, noopLogger{})

	result, err := uc.Execute(context.Background(), &Request{
		Latitude:  originLat,
		Longitude: originLng,
		Limit:     2,
	})
	require.NoError(t, err)
	assert.Len(t, result.Providers, 2)
	assert.Equal(t, 3, result.Stats.TotalFound)
}

func TestExecuteRejectsOutOfRangeCoordinates(t *testing.T) {
	uc := NewUseCase(&fakeProviderRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Latitude: 91, Longitude: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Latitude: 0, Longitude: -181})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Latitude: 0, Longitude: 0, RadiusKm: ptr.Ptr(domain.MaxSearchRadiusKm + 1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSortByDistanceIsStable(t *testing.T) {
	items := []RankedProvider{
		{ID: 1, DistanceKm: 5},
		{ID: 2, DistanceKm: 3},
		{ID: 3, DistanceKm: 5},
		{ID: 4, DistanceKm: 1},
	}
	sortByDistance(items)

	ids := []int64{items[0].ID, items[1].ID, items[2].ID, items[3].ID}
	assert.Equal(t, []int64{4, 2, 1, 3}, ids)
}
