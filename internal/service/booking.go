package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"journeys/internal/domain"
	internalredis "journeys/internal/redis"
	"journeys/internal/repository"
)

// BookingService handles the booking lifecycle.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	spotRepo     repository.SpotRepository
	spotCache    *internalredis.SpotCache
	tx           repository.TxManager
	notification *NotificationService
}

// NewBookingService creates a new BookingService. spotCache may be nil, in
// which case spot names are always resolved from the repository.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	spotRepo repository.SpotRepository,
	spotCache *internalredis.SpotCache,
	tx repository.TxManager,
	notification *NotificationService,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		spotRepo:     spotRepo,
		spotCache:    spotCache,
		tx:           tx,
		notification: notification,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	CustomerEmail string
	CustomerName  string
	DriverEmail   string
	GuideEmail    string // Optional: empty means no guide

	FromCity      string
	ToCity        string
	Date          string
	Time          string
	Passengers    int
	SelectedSpots []string
	PaymentMethod domain.PaymentMethod

	DriverPickupLocation string
	GuidePickupLocation  string
}

// CreateBookingResponse contains the result of creating a booking.
type CreateBookingResponse struct {
	Booking *domain.Booking
	// EmailsSent is false when any confirmation email failed. The booking
	// itself is durable either way.
	EmailsSent bool
}

// CreateBooking persists a booking priced from the driver's and guide's day
// rates, then sends best-effort notifications to every party.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	if req.CustomerEmail == "" || req.DriverEmail == "" {
		return nil, ErrMissingBookingData
	}

	paymentMethod, err := validatePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	customer, err := s.userRepo.GetByEmail(ctx, req.CustomerEmail)
	if err != nil {
		return nil, err
	}

	driver, err := s.userRepo.GetByEmailAndRole(ctx, req.DriverEmail, domain.RoleDriver)
	if err != nil {
		return nil, err
	}

	var guide *domain.User
	if req.GuideEmail != "" {
		guide, err = s.userRepo.GetByEmailAndRole(ctx, req.GuideEmail, domain.RoleGuide)
		if err != nil {
			return nil, err
		}
	}

	// Cost is fixed at creation: driver day rate plus guide day rate when
	// a guide was chosen.
	totalCost := driver.DayRate()
	if guide != nil {
		totalCost += guide.DayRate()
	}

	booking := &domain.Booking{
		ID:                   uuid.New().String(),
		CustomerEmail:        req.CustomerEmail,
		DriverEmail:          req.DriverEmail,
		GuideEmail:           req.GuideEmail,
		FromCity:             req.FromCity,
		ToCity:               req.ToCity,
		Date:                 req.Date,
		Time:                 req.Time,
		Passengers:           req.Passengers,
		SelectedSpots:        req.SelectedSpots,
		TotalCost:            totalCost,
		PaymentMethod:        paymentMethod,
		Status:               domain.BookingStatusUpcoming,
		DriverPickupLocation: req.DriverPickupLocation,
		GuidePickupLocation:  req.GuidePickupLocation,
		CreatedAt:            time.Now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	emailsSent := s.sendBookingEmails(ctx, booking, customer, driver, guide, req.CustomerName)

	return &CreateBookingResponse{Booking: booking, EmailsSent: emailsSent}, nil
}

// sendBookingEmails notifies the customer, driver and optional guide. The
// booking is already persisted; failures only soften the success message.
func (s *BookingService) sendBookingEmails(ctx context.Context, booking *domain.Booking, customer, driver, guide *domain.User, customerName string) bool {
	if s.notification == nil {
		return true
	}

	if customerName == "" {
		customerName = customer.Name
	}

	details := BookingEmail{
		CustomerName: customerName,
		DriverName:   driver.Name,
		GuideName:    "Not Added",
	}
	if driver.Driver != nil && driver.Driver.CarNumber != "" {
		details.VehicleNo = driver.Driver.CarNumber
	} else {
		details.VehicleNo = "Not Updated"
	}
	if guide != nil {
		details.GuideName = guide.Name
	}

	names, err := s.spotNames(ctx, booking.SelectedSpots)
	if err == nil {
		details.SpotNames = names
	}

	ok := true
	if err := s.notification.SendBookingConfirmation(ctx, customer, booking, details); err != nil {
		logSendFailure("booking confirmation", customer.Email, err)
		ok = false
	}
	if err := s.notification.SendDriverAssignment(ctx, driver, booking, details); err != nil {
		logSendFailure("driver assignment", driver.Email, err)
		ok = false
	}
	if guide != nil {
		if err := s.notification.SendGuideAssignment(ctx, guide, booking, details); err != nil {
			logSendFailure("guide assignment", guide.Email, err)
			ok = false
		}
	}
	return ok
}

// BookingView is a booking with its spot ids resolved to display names.
type BookingView struct {
	*domain.Booking
	SpotNames []string
}

// ListBookings returns the bookings where the user appears under the given
// role, each with selected spot names attached.
func (s *BookingService) ListBookings(ctx context.Context, email string, role domain.Role) ([]*BookingView, error) {
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	bookings, err := s.bookingRepo.ListForUser(ctx, email, role)
	if err != nil {
		return nil, err
	}

	views := make([]*BookingView, 0, len(bookings))
	for _, booking := range bookings {
		names, err := s.spotNames(ctx, booking.SelectedSpots)
		if err != nil {
			return nil, err
		}
		views = append(views, &BookingView{Booking: booking, SpotNames: names})
	}
	return views, nil
}

// StartBooking moves an upcoming booking to ongoing.
func (s *BookingService) StartBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusUpcoming {
		return nil, ErrBookingNotUpcoming
	}

	booking.Status = domain.BookingStatusOngoing
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CancelBooking cancels an upcoming booking. Ongoing and finished trips
// cannot be cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusUpcoming {
		return nil, ErrBookingNotCancellable
	}

	booking.Status = domain.BookingStatusCancelled
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// CompleteBooking completes an ongoing booking. The status change, the
// driver's earnings and trip count, and the guide's trip count commit in a
// single transaction. Guides accrue trips but no earnings.
func (s *BookingService) CompleteBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusOngoing {
		return nil, ErrBookingNotOngoing
	}

	booking.Status = domain.BookingStatusCompleted

	err = s.tx.WithinTx(ctx, func(users repository.UserRepository, bookings repository.BookingRepository) error {
		if err := bookings.Update(ctx, booking); err != nil {
			return err
		}

		driver, err := users.GetByEmailAndRole(ctx, booking.DriverEmail, domain.RoleDriver)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Denormalized email key: the driver record may be gone.
				return nil
			}
			return err
		}
		driver.TripsCompleted++
		driver.TotalEarnings += booking.TotalCost
		if err := users.Update(ctx, driver); err != nil {
			return err
		}

		if booking.GuideEmail == "" {
			return nil
		}
		guide, err := users.GetByEmailAndRole(ctx, booking.GuideEmail, domain.RoleGuide)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		guide.TripsCompleted++
		return users.Update(ctx, guide)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// spotNames resolves spot ids to display names, preferring the Redis-cached
// catalog and falling back to the repository.
func (s *BookingService) spotNames(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	byID := make(map[string]string, len(ids))

	if s.spotCache != nil {
		if catalog, err := s.spotCache.GetCatalog(ctx); err == nil && catalog != nil {
			for _, spot := range catalog {
				byID[spot.SpotID] = spot.Name
			}
		}
	}

	if len(byID) == 0 {
		spots, err := s.spotRepo.GetBySpotIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, spot := range spots {
			byID[spot.SpotID] = spot.Name
		}
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// validatePaymentMethod validates a payment method, defaulting to cash.
func validatePaymentMethod(method domain.PaymentMethod) (domain.PaymentMethod, error) {
	switch method {
	case domain.PaymentMethodPhonePay, domain.PaymentMethodCash:
		return method, nil
	case "":
		return domain.PaymentMethodCash, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
