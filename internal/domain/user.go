package domain

import "time"

// Role determines which fields and permissions apply to a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleGuide    Role = "guide"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleGuide:
		return true
	}
	return false
}

// User represents an account in the system. Role-specific data lives on the
// optional profile structs, discriminated by Role: Driver is non-nil only for
// driver accounts, Guide only for guide accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role

	Driver *DriverProfile
	Guide  *GuideProfile

	TotalEarnings  float64
	TripsCompleted int
	Rating         float64

	ResetToken  string
	ResetExpiry time.Time

	CreatedAt time.Time
}

// DriverProfile holds the driver-only fields of a user.
type DriverProfile struct {
	CarNumber         string
	CarModel          string
	CarImage          string
	PricePerDay       float64
	DrivingLicenseURL string
	LicenseVerified   bool
}

// GuideProfile holds the guide-only fields of a user.
type GuideProfile struct {
	Languages      []string
	Experience     string
	ProfileImage   string
	GuideNumber    string
	PricePerDay    float64
	GuideIDCardURL string
	IDCardVerified bool
}

// DayRate returns the per-day rate of a driver or guide, zero otherwise.
func (u *User) DayRate() float64 {
	switch {
	case u.Driver != nil:
		return u.Driver.PricePerDay
	case u.Guide != nil:
		return u.Guide.PricePerDay
	}
	return 0
}
