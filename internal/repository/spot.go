package repository

import (
	"context"

	"journeys/internal/domain"
)

// SpotRepository defines the read operations for the tourist-spot catalog.
type SpotRepository interface {
	// GetAll retrieves the full catalog.
	GetAll(ctx context.Context) ([]*domain.TouristSpot, error)

	// GetByCities retrieves spots whose city is in the given set.
	GetByCities(ctx context.Context, cities []string) ([]*domain.TouristSpot, error)

	// GetBySpotIDs retrieves spots matching the given catalog ids.
	GetBySpotIDs(ctx context.Context, ids []string) ([]*domain.TouristSpot, error)
}
