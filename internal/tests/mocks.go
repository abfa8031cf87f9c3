package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"journeys/internal/domain"
	"journeys/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // keyed by email

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	GetError    error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

// GetUser returns the stored user for test assertions.
func (m *MockUserRepository) GetUser(email string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[email]
}

// CountUsers returns the number of stored users.
func (m *MockUserRepository) CountUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok || user.Role != role {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.User
	for _, u := range m.users {
		if u.Role == role {
			copy := *u
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[user.Email]
	if !ok {
		return repository.ErrNotFound
	}
	*stored = *user
	return nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

// GetBooking returns the stored booking for test assertions.
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// CountBookings returns the number of stored bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) ListForUser(ctx context.Context, email string, role domain.Role) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		var match bool
		switch role {
		case domain.RoleCustomer:
			match = b.CustomerEmail == email
		case domain.RoleDriver:
			match = b.DriverEmail == email
		case domain.RoleGuide:
			match = b.GuideEmail == email
		}
		if match {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.bookings[booking.ID]
	if !ok {
		return repository.ErrNotFound
	}
	*stored = *booking
	return nil
}

// ──────────────────────────────────────────────
// MOCK SPOT REPOSITORY
// ──────────────────────────────────────────────

// MockSpotRepository is a mock implementation of SpotRepository.
type MockSpotRepository struct {
	mu    sync.RWMutex
	spots []*domain.TouristSpot

	// Error injection
	GetError error
}

// NewMockSpotRepository creates a new mock spot repository.
func NewMockSpotRepository() *MockSpotRepository {
	return &MockSpotRepository{}
}

// AddSpot adds a spot to the mock repository.
func (m *MockSpotRepository) AddSpot(spot *domain.TouristSpot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spots = append(m.spots, spot)
}

func (m *MockSpotRepository) GetAll(ctx context.Context) ([]*domain.TouristSpot, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.TouristSpot, len(m.spots))
	for i, s := range m.spots {
		copy := *s
		result[i] = &copy
	}
	return result, nil
}

func (m *MockSpotRepository) GetByCities(ctx context.Context, cities []string) ([]*domain.TouristSpot, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[string]bool, len(cities))
	for _, c := range cities {
		wanted[c] = true
	}
	var result []*domain.TouristSpot
	for _, s := range m.spots {
		if wanted[s.City] {
			copy := *s
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockSpotRepository) GetBySpotIDs(ctx context.Context, ids []string) ([]*domain.TouristSpot, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []*domain.TouristSpot
	for _, s := range m.spots {
		if wanted[s.SpotID] {
			copy := *s
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK TX MANAGER
// ──────────────────────────────────────────────

// MockTxManager runs the transactional function against plain mocks. Rollback
// is not simulated; error-path tests assert on the returned error instead.
type MockTxManager struct {
	Users    *MockUserRepository
	Bookings *MockBookingRepository

	// Counters for verification
	WithinTxCallCount int32

	// Error injection
	BeginError error
}

// NewMockTxManager creates a new mock transaction manager.
func NewMockTxManager(users *MockUserRepository, bookings *MockBookingRepository) *MockTxManager {
	return &MockTxManager{Users: users, Bookings: bookings}
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(users repository.UserRepository, bookings repository.BookingRepository) error) error {
	atomic.AddInt32(&m.WithinTxCallCount, 1)
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(m.Users, m.Bookings)
}

// ──────────────────────────────────────────────
// MOCK MAILER
// ──────────────────────────────────────────────

// SentEmail records one delivered message.
type SentEmail struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentEmail

	// Counters for verification
	SendCallCount int32

	// Error injection
	SendError error
}

// NewMockMailer creates a new mock mailer.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, to, replyTo, subject, htmlBody string) error {
	atomic.AddInt32(&m.SendCallCount, 1)
	if m.SendError != nil {
		return m.SendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentEmail{To: to, ReplyTo: replyTo, Subject: subject, Body: htmlBody})
	return nil
}

// Sent returns the delivered messages for test assertions.
func (m *MockMailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]SentEmail, len(m.sent))
	copy(result, m.sent)
	return result
}
