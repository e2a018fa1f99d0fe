package search_providers

// Request describes a provider search around the user's position.
type Request struct {
	Latitude  float64
	Longitude float64
	// RadiusKm is the search radius; nil applies the default. A zero
	// radius is honored literally and only matches providers at the
	// exact origin; a negative radius matches nothing.
	RadiusKm      *float64
	ServiceID     *int64
	VehicleTypeID *int64
	Limit         int
}

// RankedProvider is a provider annotated with its distance to the user.
type RankedProvider struct {
	ID           int64
	BusinessName string
	Latitude     float64
	Longitude    float64
	Rating       float64
	TotalReviews int
	DistanceKm   float64
}

// Stats aggregates distances over the filtered result set. The pointer
// fields are nil when no provider is within the radius.
type Stats struct {
	TotalFound        int
	AverageDistanceKm *float64
	ClosestKm         *float64
	FurthestKm        *float64
}

// Response is the ranked, radius-filtered provider list.
type Response struct {
	Providers []RankedProvider
	Stats     Stats
}
