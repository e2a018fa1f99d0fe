package search_providers

import (
	searchProviders "github.com/ruedapp/RuedApp-CoreService/internal/usecase/search_providers"
)

// SearchProvidersRequest is the geo search payload.
type SearchProvidersRequest struct {
	UserLat       float64  `json:"user_lat"`
	UserLng       float64  `json:"user_lng"`
	RadiusKm      *float64 `json:"radius_km,omitempty"`
	ServiceID     *int64   `json:"service_id,omitempty"`
	VehicleTypeID *int64   `json:"vehicle_type_id,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

// ProviderResponse is a ranked provider in the search result.
type ProviderResponse struct {
	ID           int64   `json:"id"`
	BusinessName string  `json:"business_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
	DistanceKm   float64 `json:"distance_km"`
}

// StatsResponse aggregates distances over the filtered result set.
type StatsResponse struct {
	TotalFound        int      `json:"total_found"`
	AverageDistanceKm *float64 `json:"average_distance_km,omitempty"`
	ClosestKm         *float64 `json:"closest_km,omitempty"`
	FurthestKm        *float64 `json:"furthest_km,omitempty"`
}

// SearchProvidersResponse is the ranked provider list.
type SearchProvidersResponse struct {
	Success   bool               `json:"success"`
	Providers []ProviderResponse `json:"providers"`
	Stats     StatsResponse      `json:"stats"`
}

// FromUseCaseResponse converts the use case result to the wire shape.
func FromUseCaseResponse(result *searchProviders.Response) SearchProvidersResponse {
	providers := make([]ProviderResponse, 0, len(result.Providers))
	for _, p := range result.Providers {
		providers = append(providers, ProviderResponse{
			ID:           p.ID,
			BusinessName: p.BusinessName,
			Latitude:     p.Latitude,
			Longitude:    p.Longitude,
			Rating:       p.Rating,
			TotalReviews: p.TotalReviews,
			DistanceKm:   p.DistanceKm,
		})
	}
	return SearchProvidersResponse{
		Success:   true,
		Providers: providers,
		Stats: StatsResponse{
			TotalFound:        result.Stats.TotalFound,
			AverageDistanceKm: result.Stats.AverageDistanceKm,
			ClosestKm:         result.Stats.ClosestKm,
			FurthestKm:        result.Stats.FurthestKm,
		},
	}
}
