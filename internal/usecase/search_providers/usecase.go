package search_providers

import (
	"context"
	"fmt"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// UseCase ranks active providers by great-circle distance to the user.
type UseCase struct {
	providerRepo ProviderRepository
	logger       Logger
}

// NewUseCase creates the provider search use case.
func NewUseCase(providerRepo ProviderRepository, logger Logger) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Execute filters providers to the search radius, sorts them ascending by
// distance (stable on ties) and truncates to the limit. Statistics are
// computed over the filtered set, before truncation.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchProviders: validation failed: %v", err)
		return nil, err
	}

	radius := domain.DefaultSearchRadiusKm
	if req.RadiusKm != nil {
		radius = *req.RadiusKm
	}

	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}

	// A negative radius cannot contain any provider; short-circuit before
	// touching storage. Zero is honored literally: distance <= 0 keeps
	// providers at the exact origin.
	if radius < 0 {
		uc.logger.Info("SearchProviders: negative radius %.2f, returning empty set", radius)
		return &Response{Providers: []RankedProvider{}, Stats: Stats{}}, nil
	}

	candidates, err := uc.providerRepo.ListActive(ctx, req.ServiceID, req.VehicleTypeID)
	if err != nil {
		uc.logger.Error("SearchProviders: failed to list providers: %v", err)
		return nil, fmt.Errorf("%w: failed to list providers: %v", ErrInternal, err)
	}

	ranked := make([]RankedProvider, 0, len(candidates))
	for _, p := range candidates {
		// Providers without coordinates are a data-quality gap, not an
		// error: they simply cannot be ranked.
		if !p.HasLocation() {
			continue
		}

		distance := round2(haversineKm(req.Latitude, req.Longitude, *p.Latitude, *p.Longitude))
		if distance > radius {
			continue
		}

		ranked = append(ranked, RankedProvider{
			ID:           p.ID,
			BusinessName: p.BusinessName,
			Latitude:     *p.Latitude,
			Longitude:    *p.Longitude,
			Rating:       p.Rating,
			TotalReviews: p.TotalReviews,
			DistanceKm:   distance,
		})
	}

	sortByDistance(ranked)

	stats := computeStats(ranked)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	uc.logger.Info("SearchProviders: %d/%d providers within %.2f km of (%.5f, %.5f)",
		stats.TotalFound, len(candidates), radius, req.Latitude, req.Longitude)

	return &Response{
		Providers: ranked,
		Stats:     stats,
	}, nil
}

func validateRequest(req *Request) error {
	if req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidInput)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidInput)
	}
	if req.RadiusKm != nil && *req.RadiusKm > domain.MaxSearchRadiusKm {
		return fmt.Errorf("%w: radius exceeds %v km", ErrInvalidInput, domain.MaxSearchRadiusKm)
	}
	return nil
}

// computeStats aggregates over the already-sorted filtered set.
func computeStats(ranked []RankedProvider) Stats {
	stats := Stats{TotalFound: len(ranked)}
	if len(ranked) == 0 {
		return stats
	}

	sum := 0.0
	for _, p := range ranked {
		sum += p.DistanceKm
	}
	avg := round2(sum / float64(len(ranked)))
	closest := ranked[0].DistanceKm
	furthest := ranked[len(ranked)-1].DistanceKm

	stats.AverageDistanceKm = &avg
	stats.ClosestKm = &closest
	stats.FurthestKm = &furthest

	return stats
}
