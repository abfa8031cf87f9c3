package tests

import (
	"context"
	"errors"
	"testing"

	"journeys/internal/domain"
	"journeys/internal/repository"
	"journeys/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING LIFECYCLE
// ──────────────────────────────────────────────

func newLifecycleFixture() (*service.BookingService, *MockUserRepository, *MockBookingRepository) {
	userRepo := NewMockUserRepository()
	bookingRepo := NewMockBookingRepository()
	spotRepo := NewMockSpotRepository()
	tx := NewMockTxManager(userRepo, bookingRepo)
	svc := service.NewBookingService(bookingRepo, userRepo, spotRepo, nil, tx, nil)
	return svc, userRepo, bookingRepo
}

func addBooking(repo *MockBookingRepository, id string, status domain.BookingStatus, cost float64) {
	repo.AddBooking(&domain.Booking{
		ID:            id,
		CustomerEmail: "customer@test.com",
		DriverEmail:   "driver@test.com",
		GuideEmail:    "guide@test.com",
		TotalCost:     cost,
		Status:        status,
	})
}

func TestStartBooking_UpcomingBecomesOngoing(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newLifecycleFixture()
	addBooking(bookingRepo, "booking-1", domain.BookingStatusUpcoming, 4000)

	booking, err := svc.StartBooking(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != domain.BookingStatusOngoing {
		t.Errorf("expected ongoing, got %s", booking.Status)
	}
}

func TestStartBooking_OnlyUpcomingCanStart(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newLifecycleFixture()

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusOngoing,
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
	} {
		id := "booking-" + string(status)
		addBooking(bookingRepo, id, status, 4000)

		_, err := svc.StartBooking(context.Background(), id)
		if !errors.Is(err, service.ErrBookingNotUpcoming) {
			t.Errorf("status %s: expected ErrBookingNotUpcoming, got %v", status, err)
		}
		if got := bookingRepo.GetBooking(id).Status; got != status {
			t.Errorf("status %s must be unchanged, got %s", status, got)
		}
	}
}

func TestCancelBooking_UpcomingBecomesCancelled(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newLifecycleFixture()
	addBooking(bookingRepo, "booking-1", domain.BookingStatusUpcoming, 4000)

	booking, err := svc.CancelBooking(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != domain.BookingStatusCancelled {
		t.Errorf("expected cancelled, got %s", booking.Status)
	}
	if bookingRepo.GetBooking("booking-1").Status != domain.BookingStatusCancelled {
		t.Error("cancellation was not persisted")
	}
}

func TestCancelBooking_NonUpcomingFailsUnchanged(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newLifecycleFixture()

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusOngoing,
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
	} {
		id := "booking-" + string(status)
		addBooking(bookingRepo, id, status, 4000)

		_, err := svc.CancelBooking(context.Background(), id)
		if !errors.Is(err, service.ErrBookingNotCancellable) {
			t.Errorf("status %s: expected ErrBookingNotCancellable, got %v", status, err)
		}
		if got := bookingRepo.GetBooking(id).Status; got != status {
			t.Errorf("status %s must be unchanged, got %s", status, got)
		}
	}
}

func TestCancelBooking_UnknownBookingReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newLifecycleFixture()

	_, err := svc.CancelBooking(context.Background(), "ghost")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteBooking_CreditsDriverAndGuide(t *testing.T) {
	t.Parallel()

	svc, userRepo, bookingRepo := newLifecycleFixture()
	addDriver(userRepo, "driver@test.com", 2500)
	addGuide(userRepo, "guide@test.com", 1500)
	addBooking(bookingRepo, "booking-1", domain.BookingStatusOngoing, 4000)

	booking, err := svc.CompleteBooking(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != domain.BookingStatusCompleted {
		t.Errorf("expected completed, got %s", booking.Status)
	}

	driver := userRepo.GetUser("driver@test.com")
	if driver.TripsCompleted != 1 {
		t.Errorf("expected driver trips 1, got %d", driver.TripsCompleted)
	}
	if driver.TotalEarnings != 4000 {
		t.Errorf("expected driver earnings 4000, got %v", driver.TotalEarnings)
	}

	// Guides accrue trips, not earnings.
	guide := userRepo.GetUser("guide@test.com")
	if guide.TripsCompleted != 1 {
		t.Errorf("expected guide trips 1, got %d", guide.TripsCompleted)
	}
	if guide.TotalEarnings != 0 {
		t.Errorf("expected guide earnings 0, got %v", guide.TotalEarnings)
	}
}

func TestCompleteBooking_OnlyOngoingCanComplete(t *testing.T) {
	t.Parallel()

	svc, userRepo, bookingRepo := newLifecycleFixture()
	addDriver(userRepo, "driver@test.com", 2500)

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusUpcoming,
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
	} {
		id := "booking-" + string(status)
		addBooking(bookingRepo, id, status, 4000)

		_, err := svc.CompleteBooking(context.Background(), id)
		if !errors.Is(err, service.ErrBookingNotOngoing) {
			t.Errorf("status %s: expected ErrBookingNotOngoing, got %v", status, err)
		}
	}

	driver := userRepo.GetUser("driver@test.com")
	if driver.TripsCompleted != 0 || driver.TotalEarnings != 0 {
		t.Error("failed completions must not credit the driver")
	}
}

func TestCompleteBooking_NoGuideCreditsDriverOnly(t *testing.T) {
	t.Parallel()

	svc, userRepo, bookingRepo := newLifecycleFixture()
	addDriver(userRepo, "driver@test.com", 2500)
	bookingRepo.AddBooking(&domain.Booking{
		ID:            "booking-1",
		CustomerEmail: "customer@test.com",
		DriverEmail:   "driver@test.com",
		TotalCost:     2500,
		Status:        domain.BookingStatusOngoing,
	})

	if _, err := svc.CompleteBooking(context.Background(), "booking-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	driver := userRepo.GetUser("driver@test.com")
	if driver.TripsCompleted != 1 || driver.TotalEarnings != 2500 {
		t.Errorf("expected trips 1 and earnings 2500, got %d / %v", driver.TripsCompleted, driver.TotalEarnings)
	}
}

func TestCompleteBooking_MissingDriverRecordTolerated(t *testing.T) {
	t.Parallel()

	svc, _, bookingRepo := newLifecycleFixture()
	addBooking(bookingRepo, "booking-1", domain.BookingStatusOngoing, 4000)

	// Driver account was deleted after the booking was made.
	booking, err := svc.CompleteBooking(context.Background(), "booking-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != domain.BookingStatusCompleted {
		t.Errorf("expected completed, got %s", booking.Status)
	}
}

func TestCompleteBooking_TransactionFailureLeavesStatus(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	bookingRepo := NewMockBookingRepository()
	spotRepo := NewMockSpotRepository()
	tx := NewMockTxManager(userRepo, bookingRepo)
	tx.BeginError = errors.New("connection lost")
	svc := service.NewBookingService(bookingRepo, userRepo, spotRepo, nil, tx, nil)

	addBooking(bookingRepo, "booking-1", domain.BookingStatusOngoing, 4000)

	_, err := svc.CompleteBooking(context.Background(), "booking-1")
	if err == nil {
		t.Fatal("expected error from failed transaction")
	}
	if got := bookingRepo.GetBooking("booking-1").Status; got != domain.BookingStatusOngoing {
		t.Errorf("status must remain ongoing, got %s", got)
	}
}
