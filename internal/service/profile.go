package service

import (
	"context"
	"errors"

	"journeys/internal/domain"
	"journeys/internal/repository"
)

// ProfileService handles profile updates and document verification.
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// ProfileUpdate carries the editable profile fields. Nil pointers mean the
// field was absent from the request and keeps its stored value.
type ProfileUpdate struct {
	Name  *string
	Phone *string

	// Driver fields.
	CarNumber   *string
	CarModel    *string
	CarImage    *string
	PricePerDay *float64

	// Guide fields.
	Languages    []string
	Experience   *string
	ProfileImage *string
	GuideNumber  *string

	// Set when a new document was uploaded this request.
	DrivingLicenseURL string
	GuideIDCardURL    string
}

// UpdateProfile applies a partial update to the user identified by email.
// Uploading a fresh driving license or guide id card resets the matching
// verified flag so the operator reviews the new document.
func (s *ProfileService) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}

	if user.Role == domain.RoleDriver {
		if user.Driver == nil {
			user.Driver = &domain.DriverProfile{}
		}
		if update.CarNumber != nil {
			user.Driver.CarNumber = *update.CarNumber
		}
		if update.CarModel != nil {
			user.Driver.CarModel = *update.CarModel
		}
		if update.CarImage != nil {
			user.Driver.CarImage = *update.CarImage
		}
		if update.PricePerDay != nil {
			user.Driver.PricePerDay = *update.PricePerDay
		}
		if update.DrivingLicenseURL != "" {
			user.Driver.DrivingLicenseURL = update.DrivingLicenseURL
			user.Driver.LicenseVerified = false
		}
	}

	if user.Role == domain.RoleGuide {
		if user.Guide == nil {
			user.Guide = &domain.GuideProfile{}
		}
		if update.Languages != nil {
			user.Guide.Languages = update.Languages
		}
		if update.Experience != nil {
			user.Guide.Experience = *update.Experience
		}
		if update.ProfileImage != nil {
			user.Guide.ProfileImage = *update.ProfileImage
		}
		if update.GuideNumber != nil {
			user.Guide.GuideNumber = *update.GuideNumber
		}
		if update.PricePerDay != nil {
			user.Guide.PricePerDay = *update.PricePerDay
		}
		if update.GuideIDCardURL != "" {
			user.Guide.GuideIDCardURL = update.GuideIDCardURL
			user.Guide.IDCardVerified = false
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile returns the user identified by email.
func (s *ProfileService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// VerifyLicense marks a driver's uploaded license as verified.
func (s *ProfileService) VerifyLicense(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmailAndRole(ctx, email, domain.RoleDriver)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotADriver
		}
		return nil, err
	}

	if user.Driver == nil {
		user.Driver = &domain.DriverProfile{}
	}
	user.Driver.LicenseVerified = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
