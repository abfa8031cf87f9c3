package repository

import (
	"context"

	"journeys/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// ListForUser retrieves bookings where the user appears in the email
	// column selected by role (customer, driver or guide).
	ListForUser(ctx context.Context, email string, role domain.Role) ([]*domain.Booking, error)

	// Update updates an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error
}
