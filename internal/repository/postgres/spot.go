package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"journeys/internal/domain"
)

const spotColumns = `spot_id, name, city, description, history, image`

// SpotRepository implements repository.SpotRepository using PostgreSQL.
type SpotRepository struct {
	q Querier
}

// NewSpotRepository creates a new PostgreSQL tourist-spot repository.
func NewSpotRepository(db *sql.DB) *SpotRepository {
	return &SpotRepository{q: db}
}

// GetAll retrieves the full catalog.
func (r *SpotRepository) GetAll(ctx context.Context) ([]*domain.TouristSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM tourist_spots ORDER BY spot_id`
	return r.querySpots(ctx, query)
}

// GetByCities retrieves spots whose city is in the given set.
func (r *SpotRepository) GetByCities(ctx context.Context, cities []string) ([]*domain.TouristSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM tourist_spots WHERE city = ANY($1) ORDER BY spot_id`
	return r.querySpots(ctx, query, pq.Array(cities))
}

// GetBySpotIDs retrieves spots matching the given catalog ids.
func (r *SpotRepository) GetBySpotIDs(ctx context.Context, ids []string) ([]*domain.TouristSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM tourist_spots WHERE spot_id = ANY($1) ORDER BY spot_id`
	return r.querySpots(ctx, query, pq.Array(ids))
}

func (r *SpotRepository) querySpots(ctx context.Context, query string, args ...any) ([]*domain.TouristSpot, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spots []*domain.TouristSpot
	for rows.Next() {
		var spot domain.TouristSpot
		if err := rows.Scan(&spot.SpotID, &spot.Name, &spot.City, &spot.Description, &spot.History, &spot.Image); err != nil {
			return nil, err
		}
		spots = append(spots, &spot)
	}
	return spots, rows.Err()
}
