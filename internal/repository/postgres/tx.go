package postgres

import (
	"context"
	"database/sql"

	"journeys/internal/repository"
)

// TxManager implements repository.TxManager on top of *sql.DB.
type TxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinTx begins a transaction, hands transaction-scoped repositories to fn,
// and commits when fn returns nil. Any error rolls everything back.
func (m *TxManager) WithinTx(ctx context.Context, fn func(users repository.UserRepository, bookings repository.BookingRepository) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(NewUserRepositoryWithTx(tx), NewBookingRepositoryWithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
