package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"journeys/internal/domain"
	"journeys/internal/repository"
)

const userColumns = `id, name, email, phone, password_hash, role,
		car_number, car_model, car_image, price_per_day, driving_license_url, license_verified,
		languages, experience, profile_image, guide_number, guide_id_card_url, id_card_verified,
		total_earnings, trips_completed, rating, reset_token, reset_expiry, created_at`

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	q Querier
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{q: db}
}

// NewUserRepositoryWithTx creates a user repository using a transaction.
func NewUserRepositoryWithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{q: tx}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`
	args := userArgs(user)
	_, err := r.q.ExecContext(ctx, query, args...)
	return err
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.q.QueryRowContext(ctx, query, email))
}

// GetByEmailAndRole retrieves a user by the (email, role) tuple.
func (r *UserRepository) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND role = $2`
	return scanUser(r.q.QueryRowContext(ctx, query, email, role))
}

// GetByRole retrieves all users with the given role.
func (r *UserRepository) GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`
	rows, err := r.q.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update persists changes to an existing user, including profile fields.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			name = $2, email = $3, phone = $4, password_hash = $5, role = $6,
			car_number = $7, car_model = $8, car_image = $9, price_per_day = $10,
			driving_license_url = $11, license_verified = $12,
			languages = $13, experience = $14, profile_image = $15, guide_number = $16,
			guide_id_card_url = $17, id_card_verified = $18,
			total_earnings = $19, trips_completed = $20, rating = $21,
			reset_token = $22, reset_expiry = $23, created_at = $24
		WHERE id = $1
	`
	args := userArgs(user)
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// userArgs flattens a user and its optional profiles into column order.
func userArgs(user *domain.User) []any {
	var (
		carNumber, carModel, carImage sql.NullString
		licenseURL                    sql.NullString
		licenseVerified               bool
		languages                     []string
		experience, profileImage      sql.NullString
		guideNumber, idCardURL        sql.NullString
		idCardVerified                bool
		pricePerDay                   float64
	)

	if d := user.Driver; d != nil {
		carNumber = nullString(d.CarNumber)
		carModel = nullString(d.CarModel)
		carImage = nullString(d.CarImage)
		licenseURL = nullString(d.DrivingLicenseURL)
		licenseVerified = d.LicenseVerified
		pricePerDay = d.PricePerDay
	}
	if g := user.Guide; g != nil {
		languages = g.Languages
		experience = nullString(g.Experience)
		profileImage = nullString(g.ProfileImage)
		guideNumber = nullString(g.GuideNumber)
		idCardURL = nullString(g.GuideIDCardURL)
		idCardVerified = g.IDCardVerified
		pricePerDay = g.PricePerDay
	}

	var resetToken sql.NullString
	var resetExpiry sql.NullTime
	if user.ResetToken != "" {
		resetToken = sql.NullString{String: user.ResetToken, Valid: true}
	}
	if !user.ResetExpiry.IsZero() {
		resetExpiry = sql.NullTime{Time: user.ResetExpiry, Valid: true}
	}

	return []any{
		user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, user.Role,
		carNumber, carModel, carImage, pricePerDay, licenseURL, licenseVerified,
		pq.Array(languages), experience, profileImage, guideNumber, idCardURL, idCardVerified,
		user.TotalEarnings, user.TripsCompleted, user.Rating, resetToken, resetExpiry, user.CreatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row *sql.Row) (*domain.User, error) {
	user, err := scanUserRow(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanUserRow(s rowScanner) (*domain.User, error) {
	var (
		user                          domain.User
		carNumber, carModel, carImage sql.NullString
		licenseURL                    sql.NullString
		licenseVerified               bool
		languages                     []string
		experience, profileImage      sql.NullString
		guideNumber, idCardURL        sql.NullString
		idCardVerified                bool
		pricePerDay                   float64
		resetToken                    sql.NullString
		resetExpiry                   sql.NullTime
	)

	err := s.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash, &user.Role,
		&carNumber, &carModel, &carImage, &pricePerDay, &licenseURL, &licenseVerified,
		pq.Array(&languages), &experience, &profileImage, &guideNumber, &idCardURL, &idCardVerified,
		&user.TotalEarnings, &user.TripsCompleted, &user.Rating, &resetToken, &resetExpiry, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ResetToken = resetToken.String
	if resetExpiry.Valid {
		user.ResetExpiry = resetExpiry.Time
	} else {
		user.ResetExpiry = time.Time{}
	}

	switch user.Role {
	case domain.RoleDriver:
		user.Driver = &domain.DriverProfile{
			CarNumber:         carNumber.String,
			CarModel:          carModel.String,
			CarImage:          carImage.String,
			PricePerDay:       pricePerDay,
			DrivingLicenseURL: licenseURL.String,
			LicenseVerified:   licenseVerified,
		}
	case domain.RoleGuide:
		user.Guide = &domain.GuideProfile{
			Languages:      languages,
			Experience:     experience.String,
			ProfileImage:   profileImage.String,
			GuideNumber:    guideNumber.String,
			PricePerDay:    pricePerDay,
			GuideIDCardURL: idCardURL.String,
			IDCardVerified: idCardVerified,
		}
	}

	return &user, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
