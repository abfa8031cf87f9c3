package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"journeys/internal/domain"
	"journeys/internal/repository"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "password_hash", "role",
		"car_number", "car_model", "car_image", "price_per_day", "driving_license_url", "license_verified",
		"languages", "experience", "profile_image", "guide_number", "guide_id_card_url", "id_card_verified",
		"total_earnings", "trips_completed", "rating", "reset_token", "reset_expiry", "created_at",
	})
}

func TestUserRepository_GetByEmailHydratesDriverProfile(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := userRows().AddRow(
		"user-1", "Ravi", "ravi@test.com", "9000000001", "hash", "driver",
		"AP39AB1234", "Toyota Innova", nil, 2500.0, "/uploads/license.jpg", true,
		[]byte("{}"), nil, nil, nil, nil, false,
		10000.0, 4, 4.8, nil, nil, time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ravi@test.com").
		WillReturnRows(rows)

	repo := NewUserRepository(db)
	user, err := repo.GetByEmail(context.Background(), "ravi@test.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Role != domain.RoleDriver {
		t.Errorf("expected driver role, got %s", user.Role)
	}
	if user.Driver == nil {
		t.Fatal("driver profile must be attached")
	}
	if user.Driver.CarNumber != "AP39AB1234" || user.Driver.PricePerDay != 2500 {
		t.Errorf("unexpected driver profile %+v", user.Driver)
	}
	if user.Guide != nil {
		t.Error("guide profile must be nil for drivers")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ghost@test.com").
		WillReturnRows(userRows())

	repo := NewUserRepository(db)
	_, err = repo.GetByEmail(context.Background(), "ghost@test.com")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateMissingRowReturnsNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepository(db)
	err = repo.Update(context.Background(), &domain.User{
		ID: "ghost", Email: "ghost@test.com", Role: domain.RoleCustomer,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
