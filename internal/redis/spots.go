package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"journeys/internal/domain"
)

// SpotCache caches the tourist-spot catalog in Redis. The catalog is static
// reference data, so it is cached as a whole with a generous TTL.
type SpotCache struct {
	client *redis.Client
}

// NewSpotCache creates a new SpotCache.
func NewSpotCache(client *redis.Client) *SpotCache {
	return &SpotCache{client: client}
}

// CatalogTTL bounds staleness after a re-seed.
const CatalogTTL = 10 * time.Minute

const catalogKey = "cache:spots:catalog"

type cachedSpot struct {
	SpotID      string `json:"spot_id"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Description string `json:"description"`
	History     string `json:"history"`
	Image       string `json:"image"`
}

// GetCatalog retrieves the cached catalog. A nil slice means cache miss.
func (s *SpotCache) GetCatalog(ctx context.Context) ([]*domain.TouristSpot, error) {
	data, err := s.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var cached []cachedSpot
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	spots := make([]*domain.TouristSpot, 0, len(cached))
	for _, c := range cached {
		spots = append(spots, &domain.TouristSpot{
			SpotID:      c.SpotID,
			Name:        c.Name,
			City:        c.City,
			Description: c.Description,
			History:     c.History,
			Image:       c.Image,
		})
	}
	return spots, nil
}

// SetCatalog stores the catalog in cache.
func (s *SpotCache) SetCatalog(ctx context.Context, spots []*domain.TouristSpot) error {
	cached := make([]cachedSpot, 0, len(spots))
	for _, spot := range spots {
		cached = append(cached, cachedSpot{
			SpotID:      spot.SpotID,
			Name:        spot.Name,
			City:        spot.City,
			Description: spot.Description,
			History:     spot.History,
			Image:       spot.Image,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, catalogKey, data, CatalogTTL).Err()
}

// Invalidate removes the catalog from cache.
func (s *SpotCache) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, catalogKey).Err()
}
