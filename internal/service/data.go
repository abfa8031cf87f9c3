package service

import (
	"context"
	"log"

	"journeys/internal/domain"
	internalredis "journeys/internal/redis"
	"journeys/internal/repository"
)

// DataService serves the reference-data reads: driver and guide listings and
// the tourist-spot catalog.
type DataService struct {
	userRepo  repository.UserRepository
	spotRepo  repository.SpotRepository
	spotCache *internalredis.SpotCache
}

// NewDataService creates a new DataService. spotCache may be nil.
func NewDataService(userRepo repository.UserRepository, spotRepo repository.SpotRepository, spotCache *internalredis.SpotCache) *DataService {
	return &DataService{
		userRepo:  userRepo,
		spotRepo:  spotRepo,
		spotCache: spotCache,
	}
}

// ListDrivers returns every registered driver.
func (s *DataService) ListDrivers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetByRole(ctx, domain.RoleDriver)
}

// ListGuides returns every registered guide.
func (s *DataService) ListGuides(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetByRole(ctx, domain.RoleGuide)
}

// ListSpots returns the full tourist-spot catalog, cache first.
func (s *DataService) ListSpots(ctx context.Context) ([]*domain.TouristSpot, error) {
	if s.spotCache != nil {
		spots, err := s.spotCache.GetCatalog(ctx)
		if err != nil {
			log.Printf("spot catalog cache read failed: %v", err)
		} else if spots != nil {
			return spots, nil
		}
	}

	spots, err := s.spotRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.spotCache != nil {
		if err := s.spotCache.SetCatalog(ctx, spots); err != nil {
			log.Printf("spot catalog cache write failed: %v", err)
		}
	}
	return spots, nil
}

// SpotsByCities returns the spots in the trip's origin and destination cities.
func (s *DataService) SpotsByCities(ctx context.Context, from, to string) ([]*domain.TouristSpot, error) {
	if from == "" || to == "" {
		return nil, ErrMissingCities
	}
	return s.spotRepo.GetByCities(ctx, []string{from, to})
}
