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
// PROFILE UPDATES AND VERIFICATION
// ──────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func TestUpdateProfile_NewLicenseResetsVerifiedFlag(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Ravi", Email: "ravi@test.com", Role: domain.RoleDriver,
		Driver: &domain.DriverProfile{
			DrivingLicenseURL: "/uploads/old-license.jpg",
			LicenseVerified:   true,
		},
	})
	svc := service.NewProfileService(userRepo)

	user, err := svc.UpdateProfile(context.Background(), "ravi@test.com", service.ProfileUpdate{
		DrivingLicenseURL: "/uploads/new-license.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Driver.DrivingLicenseURL != "/uploads/new-license.jpg" {
		t.Errorf("license url not updated: %s", user.Driver.DrivingLicenseURL)
	}
	if user.Driver.LicenseVerified {
		t.Error("a fresh upload must reset the verified flag")
	}
}

func TestUpdateProfile_NewIDCardResetsGuideVerification(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Anita", Email: "anita@test.com", Role: domain.RoleGuide,
		Guide: &domain.GuideProfile{
			GuideIDCardURL: "/uploads/old-card.jpg",
			IDCardVerified: true,
		},
	})
	svc := service.NewProfileService(userRepo)

	user, err := svc.UpdateProfile(context.Background(), "anita@test.com", service.ProfileUpdate{
		GuideIDCardURL: "/uploads/new-card.jpg",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Guide.IDCardVerified {
		t.Error("a fresh upload must reset the verified flag")
	}
}

func TestUpdateProfile_PartialUpdateKeepsOtherFields(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Ravi", Email: "ravi@test.com", Phone: "9000000001",
		Role: domain.RoleDriver,
		Driver: &domain.DriverProfile{
			CarNumber: "AP39AB1234", CarModel: "Toyota Innova", PricePerDay: 2500,
			LicenseVerified: true,
		},
	})
	svc := service.NewProfileService(userRepo)

	price := 3000.0
	user, err := svc.UpdateProfile(context.Background(), "ravi@test.com", service.ProfileUpdate{
		PricePerDay: &price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Driver.PricePerDay != 3000 {
		t.Errorf("expected price 3000, got %v", user.Driver.PricePerDay)
	}
	if user.Driver.CarNumber != "AP39AB1234" || user.Name != "Ravi" || user.Phone != "9000000001" {
		t.Error("untouched fields must keep their values")
	}
	// No new document upload, so verification stands.
	if !user.Driver.LicenseVerified {
		t.Error("verification must survive an unrelated update")
	}
}

func TestUpdateProfile_SplitsGuideLanguages(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Anita", Email: "anita@test.com", Role: domain.RoleGuide,
		Guide: &domain.GuideProfile{},
	})
	svc := service.NewProfileService(userRepo)

	user, err := svc.UpdateProfile(context.Background(), "anita@test.com", service.ProfileUpdate{
		Languages:  []string{"English", "Telugu", "Hindi"},
		Experience: strPtr("8 years"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.Guide.Languages) != 3 || user.Guide.Languages[1] != "Telugu" {
		t.Errorf("unexpected languages %v", user.Guide.Languages)
	}
}

func TestUpdateProfile_UnknownUserReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := service.NewProfileService(NewMockUserRepository())

	_, err := svc.UpdateProfile(context.Background(), "ghost@test.com", service.ProfileUpdate{
		Name: strPtr("Ghost"),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProfile_ReturnsUserOrNotFound(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Ravi", Email: "ravi@test.com", Role: domain.RoleDriver,
		Driver: &domain.DriverProfile{CarNumber: "AP39AB1234"},
	})
	svc := service.NewProfileService(userRepo)

	user, err := svc.GetProfile(context.Background(), "ravi@test.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Driver == nil || user.Driver.CarNumber != "AP39AB1234" {
		t.Errorf("profile fields missing: %+v", user)
	}

	if _, err := svc.GetProfile(context.Background(), "ghost@test.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestVerifyLicense_MarksDriverVerified(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Ravi", Email: "ravi@test.com", Role: domain.RoleDriver,
		Driver: &domain.DriverProfile{DrivingLicenseURL: "/uploads/license.jpg"},
	})
	svc := service.NewProfileService(userRepo)

	user, err := svc.VerifyLicense(context.Background(), "ravi@test.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.Driver.LicenseVerified {
		t.Error("license must be marked verified")
	}
}

func TestVerifyLicense_RejectsNonDriver(t *testing.T) {
	t.Parallel()

	userRepo := NewMockUserRepository()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Priya", Email: "priya@test.com", Role: domain.RoleCustomer,
	})
	svc := service.NewProfileService(userRepo)

	if _, err := svc.VerifyLicense(context.Background(), "priya@test.com"); !errors.Is(err, service.ErrNotADriver) {
		t.Errorf("customer: expected ErrNotADriver, got %v", err)
	}
	if _, err := svc.VerifyLicense(context.Background(), "ghost@test.com"); !errors.Is(err, service.ErrNotADriver) {
		t.Errorf("absent: expected ErrNotADriver, got %v", err)
	}
}

// ──────────────────────────────────────────────
// CONTACT RELAY
// ──────────────────────────────────────────────

func TestContactSubmit_RelaysToOperatorWithReplyTo(t *testing.T) {
	t.Parallel()

	mailer := NewMockMailer()
	notification := service.NewNotificationService(mailer, "ops@journeys.local", "http://localhost:5173")
	svc := service.NewContactService(notification)

	err := svc.Submit(context.Background(), service.ContactMessage{
		Name:    "Priya",
		Email:   "priya@test.com",
		Subject: "Refund",
		Message: "My trip was cancelled, when is the refund processed?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := mailer.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	if sent[0].To != "ops@journeys.local" {
		t.Errorf("expected relay to operator, got %s", sent[0].To)
	}
	if sent[0].ReplyTo != "priya@test.com" {
		t.Errorf("expected Reply-To submitter, got %s", sent[0].ReplyTo)
	}
	if sent[0].Subject != "[Contact Form] Refund" {
		t.Errorf("unexpected subject %q", sent[0].Subject)
	}
}

func TestContactSubmit_RequiresNameEmailMessage(t *testing.T) {
	t.Parallel()

	mailer := NewMockMailer()
	notification := service.NewNotificationService(mailer, "ops@journeys.local", "http://localhost:5173")
	svc := service.NewContactService(notification)

	err := svc.Submit(context.Background(), service.ContactMessage{Name: "Priya"})
	if !errors.Is(err, service.ErrMissingContactFields) {
		t.Fatalf("expected ErrMissingContactFields, got %v", err)
	}
	if len(mailer.Sent()) != 0 {
		t.Error("invalid submissions must not be relayed")
	}
}
