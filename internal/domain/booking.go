package domain

import "time"

// BookingStatus represents the current status of a booking.
//
// Transitions only move forward: upcoming to ongoing to completed, or
// upcoming to cancelled. Completed and cancelled are terminal.
type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// PaymentMethod represents how the customer pays for a trip.
type PaymentMethod string

const (
	PaymentMethodPhonePay PaymentMethod = "phonepay"
	PaymentMethodCash     PaymentMethod = "cash"
)

// Booking links one customer, one driver and optionally one guide to a trip.
// Users are referenced by email; GuideEmail is empty when no guide was chosen.
// TotalCost is fixed at creation time.
type Booking struct {
	ID            string
	CustomerEmail string
	DriverEmail   string
	GuideEmail    string

	FromCity      string
	ToCity        string
	Date          string
	Time          string
	Passengers    int
	SelectedSpots []string

	TotalCost     float64
	PaymentMethod PaymentMethod
	Status        BookingStatus

	DriverPickupLocation string
	GuidePickupLocation  string

	CreatedAt time.Time
}
