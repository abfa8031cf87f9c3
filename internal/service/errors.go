package service

import "errors"

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials is returned on any login failure. Absent user,
	// wrong role and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials or role")

	// ErrInvalidResetToken is returned when a password-reset token does not
	// match or has expired.
	ErrInvalidResetToken = errors.New("password reset link is invalid or has expired")

	// ErrPasswordTooShort is returned when a new password is under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrMissingRegistrationData is returned when required signup fields are absent.
	ErrMissingRegistrationData = errors.New("name, email and password are required")

	// ErrInvalidRole is returned when a role is not customer, driver or guide.
	ErrInvalidRole = errors.New("invalid role")

	// ErrMissingBookingData is returned when a booking lacks a customer or driver.
	ErrMissingBookingData = errors.New("missing essential booking data")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrBookingNotUpcoming is returned when starting a booking that is not upcoming.
	ErrBookingNotUpcoming = errors.New("only upcoming trips can be started")

	// ErrBookingNotCancellable is returned when cancelling a booking that
	// already left the upcoming state.
	ErrBookingNotCancellable = errors.New("cannot cancel a trip that already started or finished")

	// ErrBookingNotOngoing is returned when completing a booking that is not ongoing.
	ErrBookingNotOngoing = errors.New("only ongoing trips can be completed")

	// ErrMissingCities is returned when the bycities query lacks from or to.
	ErrMissingCities = errors.New("missing from or to city")

	// ErrMissingContactFields is returned when a contact submission lacks
	// name, email or message.
	ErrMissingContactFields = errors.New("name, email and message are required")

	// ErrNotADriver is returned when verifying a license for a non-driver.
	ErrNotADriver = errors.New("driver not found or is not a driver role")
)
