package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"journeys/internal/domain"
	"journeys/internal/service"
)

// ──────────────────────────────────────────────
// REGISTRATION AND LOGIN
// ──────────────────────────────────────────────

func newAuthFixture() (*service.AuthService, *MockUserRepository, *MockMailer) {
	userRepo := NewMockUserRepository()
	mailer := NewMockMailer()
	notification := service.NewNotificationService(mailer, "ops@journeys.local", "http://localhost:5173")
	svc := service.NewAuthService(userRepo, notification, "test-secret", 24*time.Hour)
	return svc, userRepo, mailer
}

func TestRegister_CreatesUserAndSendsWelcome(t *testing.T) {
	t.Parallel()

	svc, userRepo, mailer := newAuthFixture()

	user, err := svc.Register(context.Background(), service.RegisterRequest{
		Name:     "Priya Sharma",
		Email:    "priya@test.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Role != domain.RoleCustomer {
		t.Errorf("expected default role customer, got %s", user.Role)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password must be hashed")
	}
	if userRepo.CountUsers() != 1 {
		t.Errorf("expected 1 stored user, got %d", userRepo.CountUsers())
	}

	sent := mailer.Sent()
	if len(sent) != 1 || sent[0].To != "priya@test.com" {
		t.Errorf("expected one welcome email to priya@test.com, got %v", sent)
	}
}

func TestRegister_DuplicateEmailCreatesNothing(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newAuthFixture()

	req := service.RegisterRequest{Name: "Priya", Email: "priya@test.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if userRepo.CountUsers() != 1 {
		t.Errorf("duplicate register must not add a user, have %d", userRepo.CountUsers())
	}
}

func TestRegister_EmailFailureDoesNotBlockSignup(t *testing.T) {
	t.Parallel()

	svc, userRepo, mailer := newAuthFixture()
	mailer.SendError = errors.New("smtp down")

	_, err := svc.Register(context.Background(), service.RegisterRequest{
		Name: "Priya", Email: "priya@test.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("registration must survive a failed welcome email, got %v", err)
	}
	if userRepo.CountUsers() != 1 {
		t.Error("user was not stored")
	}
}

func TestLogin_WrongRoleLooksLikeWrongPassword(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Priya", Email: "priya@test.com",
		PasswordHash: string(hash), Role: domain.RoleCustomer,
	})

	_, _, wrongRoleErr := svc.Login(context.Background(), "priya@test.com", "secret123", domain.RoleDriver)
	_, _, wrongPassErr := svc.Login(context.Background(), "priya@test.com", "nope", domain.RoleCustomer)
	_, _, absentErr := svc.Login(context.Background(), "ghost@test.com", "secret123", domain.RoleCustomer)

	for _, err := range []error{wrongRoleErr, wrongPassErr, absentErr} {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	}
	if wrongRoleErr.Error() != wrongPassErr.Error() || wrongPassErr.Error() != absentErr.Error() {
		t.Error("all login failures must be indistinguishable")
	}
}

func TestLogin_SuccessReturnsToken(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	userRepo.AddUser(&domain.User{
		ID: "user-1", Name: "Priya", Email: "priya@test.com",
		PasswordHash: string(hash), Role: domain.RoleCustomer,
	})

	user, token, err := svc.Login(context.Background(), "priya@test.com", "secret123", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "priya@test.com" {
		t.Errorf("unexpected user %s", user.Email)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
}

// ──────────────────────────────────────────────
// PASSWORD RECOVERY
// ──────────────────────────────────────────────

func TestForgotPassword_UniformForUnknownEmail(t *testing.T) {
	t.Parallel()

	svc, userRepo, mailer := newAuthFixture()
	userRepo.AddUser(&domain.User{ID: "user-1", Email: "priya@test.com", Role: domain.RoleCustomer})

	if err := svc.ForgotPassword(context.Background(), "priya@test.com"); err != nil {
		t.Fatalf("known email: unexpected error: %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), "ghost@test.com"); err != nil {
		t.Fatalf("unknown email must not error, got %v", err)
	}

	// Only the real account receives mail.
	sent := mailer.Sent()
	if len(sent) != 1 || sent[0].To != "priya@test.com" {
		t.Errorf("expected one reset email to the known account, got %v", sent)
	}
	if !strings.Contains(sent[0].Body, "reset-password?token=") {
		t.Error("reset email must carry the reset link")
	}

	user := userRepo.GetUser("priya@test.com")
	if user.ResetToken == "" || user.ResetExpiry.Before(time.Now()) {
		t.Error("reset token and future expiry must be stored")
	}
}

func TestResetPassword_RejectsShortPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthFixture()

	err := svc.ResetPassword(context.Background(), "priya@test.com", "token", "abc")
	if !errors.Is(err, service.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestResetPassword_RejectsWrongOrExpiredToken(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newAuthFixture()
	userRepo.AddUser(&domain.User{
		ID: "user-1", Email: "priya@test.com", Role: domain.RoleCustomer,
		ResetToken: "good-token", ResetExpiry: time.Now().Add(-time.Minute),
	})

	cases := map[string]struct {
		email, token string
	}{
		"wrong token":   {"priya@test.com", "bad-token"},
		"expired token": {"priya@test.com", "good-token"},
		"unknown email": {"ghost@test.com", "good-token"},
	}
	for name, tc := range cases {
		err := svc.ResetPassword(context.Background(), tc.email, tc.token, "newsecret")
		if !errors.Is(err, service.ErrInvalidResetToken) {
			t.Errorf("%s: expected ErrInvalidResetToken, got %v", name, err)
		}
	}
}

func TestResetPassword_SetsNewPasswordAndClearsToken(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newAuthFixture()

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldsecret"), bcrypt.MinCost)
	userRepo.AddUser(&domain.User{
		ID: "user-1", Email: "priya@test.com", Role: domain.RoleCustomer,
		PasswordHash: string(hash),
		ResetToken:   "good-token", ResetExpiry: time.Now().Add(time.Hour),
	})

	if err := svc.ResetPassword(context.Background(), "priya@test.com", "good-token", "newsecret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user := userRepo.GetUser("priya@test.com")
	if user.ResetToken != "" || !user.ResetExpiry.IsZero() {
		t.Error("token fields must be cleared after a successful reset")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newsecret")) != nil {
		t.Error("new password must verify against the stored hash")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("oldsecret")) == nil {
		t.Error("old password must no longer verify")
	}
}
