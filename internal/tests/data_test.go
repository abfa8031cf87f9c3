package tests

import (
	"context"
	"errors"
	"testing"

	"journeys/internal/domain"
	"journeys/internal/service"
)

// ──────────────────────────────────────────────
// REFERENCE DATA READS
// ──────────────────────────────────────────────

func newDataFixture() (*service.DataService, *MockUserRepository, *MockSpotRepository) {
	userRepo := NewMockUserRepository()
	spotRepo := NewMockSpotRepository()
	svc := service.NewDataService(userRepo, spotRepo, nil)
	return svc, userRepo, spotRepo
}

func TestSpotsByCities_RequiresBothCities(t *testing.T) {
	t.Parallel()

	svc, _, spotRepo := newDataFixture()
	spotRepo.AddSpot(&domain.TouristSpot{SpotID: "charminar", Name: "Charminar", City: "Hyderabad"})

	cases := map[string]struct {
		from, to string
	}{
		"missing from": {"", "Visakhapatnam"},
		"missing to":   {"Hyderabad", ""},
		"missing both": {"", ""},
	}
	for name, tc := range cases {
		_, err := svc.SpotsByCities(context.Background(), tc.from, tc.to)
		if !errors.Is(err, service.ErrMissingCities) {
			t.Errorf("%s: expected ErrMissingCities, got %v", name, err)
		}
	}
}

func TestSpotsByCities_ReturnsSpotsOfBothCities(t *testing.T) {
	t.Parallel()

	svc, _, spotRepo := newDataFixture()
	spotRepo.AddSpot(&domain.TouristSpot{SpotID: "charminar", Name: "Charminar", City: "Hyderabad"})
	spotRepo.AddSpot(&domain.TouristSpot{SpotID: "rk-beach", Name: "RK Beach", City: "Visakhapatnam"})
	spotRepo.AddSpot(&domain.TouristSpot{SpotID: "tirumala-temple", Name: "Tirumala Temple", City: "Tirupati"})

	spots, err := svc.SpotsByCities(context.Background(), "Hyderabad", "Visakhapatnam")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spots) != 2 {
		t.Fatalf("expected 2 spots, got %d", len(spots))
	}
	for _, spot := range spots {
		if spot.City != "Hyderabad" && spot.City != "Visakhapatnam" {
			t.Errorf("spot %s from unrequested city %s", spot.SpotID, spot.City)
		}
	}
}

func TestListSpots_FallsBackToRepositoryWithoutCache(t *testing.T) {
	t.Parallel()

	svc, _, spotRepo := newDataFixture()
	spotRepo.AddSpot(&domain.TouristSpot{SpotID: "charminar", Name: "Charminar", City: "Hyderabad"})
	spotRepo.AddSpot(&domain.TouristSpot{SpotID: "golconda-fort", Name: "Golconda Fort", City: "Hyderabad"})

	spots, err := svc.ListSpots(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spots) != 2 {
		t.Errorf("expected 2 spots, got %d", len(spots))
	}
}

func TestListSpots_PropagatesRepositoryError(t *testing.T) {
	t.Parallel()

	svc, _, spotRepo := newDataFixture()
	spotRepo.GetError = errors.New("connection lost")

	if _, err := svc.ListSpots(context.Background()); err == nil {
		t.Fatal("expected repository error to surface")
	}
}

func TestListDriversAndGuides_FilterByRole(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newDataFixture()
	addCustomer(userRepo, "priya@test.com")
	addDriver(userRepo, "ravi@test.com", 2500)
	addDriver(userRepo, "suresh@test.com", 2000)
	addGuide(userRepo, "anita@test.com", 1500)

	drivers, err := svc.ListDrivers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drivers) != 2 {
		t.Errorf("expected 2 drivers, got %d", len(drivers))
	}

	guides, err := svc.ListGuides(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(guides) != 1 || guides[0].Email != "anita@test.com" {
		t.Errorf("unexpected guides %v", guides)
	}
}
