package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"journeys/internal/domain"
	"journeys/internal/repository"
)

const bookingColumns = `id, customer_email, driver_email, guide_email,
		from_city, to_city, trip_date, trip_time, passengers, selected_spots,
		total_cost, payment_method, status, driver_pickup_location, guide_pickup_location, created_at`

// BookingRepository implements repository.BookingRepository using PostgreSQL.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// NewBookingRepositoryWithTx creates a booking repository using a transaction.
func NewBookingRepositoryWithTx(tx *sql.Tx) *BookingRepository {
	return &BookingRepository{q: tx}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerEmail,
		booking.DriverEmail,
		nullString(booking.GuideEmail),
		booking.FromCity,
		booking.ToCity,
		booking.Date,
		booking.Time,
		booking.Passengers,
		pq.Array(booking.SelectedSpots),
		booking.TotalCost,
		booking.PaymentMethod,
		booking.Status,
		nullString(booking.DriverPickupLocation),
		nullString(booking.GuidePickupLocation),
		booking.CreatedAt,
	)
	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListForUser retrieves bookings matching the email column selected by role.
func (r *BookingRepository) ListForUser(ctx context.Context, email string, role domain.Role) ([]*domain.Booking, error) {
	var column string
	switch role {
	case domain.RoleCustomer:
		column = "customer_email"
	case domain.RoleDriver:
		column = "driver_email"
	case domain.RoleGuide:
		column = "guide_email"
	default:
		return nil, repository.ErrNotFound
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + column + ` = $1 ORDER BY created_at DESC`
	rows, err := r.q.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// Update updates an existing booking.
func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings SET
			customer_email = $2, driver_email = $3, guide_email = $4,
			from_city = $5, to_city = $6, trip_date = $7, trip_time = $8,
			passengers = $9, selected_spots = $10, total_cost = $11,
			payment_method = $12, status = $13,
			driver_pickup_location = $14, guide_pickup_location = $15
		WHERE id = $1
	`
	res, err := r.q.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerEmail,
		booking.DriverEmail,
		nullString(booking.GuideEmail),
		booking.FromCity,
		booking.ToCity,
		booking.Date,
		booking.Time,
		booking.Passengers,
		pq.Array(booking.SelectedSpots),
		booking.TotalCost,
		booking.PaymentMethod,
		booking.Status,
		nullString(booking.DriverPickupLocation),
		nullString(booking.GuidePickupLocation),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanBooking(s rowScanner) (*domain.Booking, error) {
	var (
		booking                   domain.Booking
		guideEmail                sql.NullString
		spots                     []string
		driverPickup, guidePickup sql.NullString
	)

	err := s.Scan(
		&booking.ID,
		&booking.CustomerEmail,
		&booking.DriverEmail,
		&guideEmail,
		&booking.FromCity,
		&booking.ToCity,
		&booking.Date,
		&booking.Time,
		&booking.Passengers,
		pq.Array(&spots),
		&booking.TotalCost,
		&booking.PaymentMethod,
		&booking.Status,
		&driverPickup,
		&guidePickup,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.GuideEmail = guideEmail.String
	booking.SelectedSpots = spots
	booking.DriverPickupLocation = driverPickup.String
	booking.GuidePickupLocation = guidePickup.String
	return &booking, nil
}
