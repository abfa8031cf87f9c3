package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"journeys/internal/domain"
	"journeys/internal/repository"
)

const resetTokenTTL = time.Hour

// AuthService handles registration, login and password recovery.
type AuthService struct {
	userRepo     repository.UserRepository
	notification *NotificationService
	jwtSecret    []byte
	tokenTTL     time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, notification *NotificationService, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		notification: notification,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

// RegisterRequest contains the parameters for creating an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
}

// Register creates a new account. The welcome email is best-effort: a send
// failure is logged and the registration still succeeds.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingRegistrationData
	}

	role := req.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}

	// Drivers and guides fill in their profile later; start it empty so
	// profile updates have a target.
	switch role {
	case domain.RoleDriver:
		user.Driver = &domain.DriverProfile{}
	case domain.RoleGuide:
		user.Guide = &domain.GuideProfile{}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.notification != nil {
		if err := s.notification.SendWelcome(ctx, user); err != nil {
			logSendFailure("welcome", user.Email, err)
		}
	}

	return user, nil
}

// Login verifies credentials against the (email, role) tuple and returns the
// user with a signed session token. All failure modes return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return user, signed, nil
}

// ForgotPassword stores a reset token and emails the reset link. It returns
// nil whether or not the email matches an account, so callers can always
// answer with the same generic message.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	user.ResetToken = token
	user.ResetExpiry = time.Now().Add(resetTokenTTL)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if s.notification != nil {
		if err := s.notification.SendPasswordReset(ctx, user, token); err != nil {
			logSendFailure("password reset", user.Email, err)
		}
	}

	return nil
}

// ResetPassword sets a new password when email, token and expiry all match.
func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if user.ResetToken == "" || user.ResetToken != token || time.Now().After(user.ResetExpiry) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetExpiry = time.Time{}
	return s.userRepo.Update(ctx, user)
}

func newResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
