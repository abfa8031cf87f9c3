package repository

import "context"

// TxManager runs a function against transaction-scoped repositories. The
// booking completion flow uses it so the status change and the earnings
// updates commit or roll back together.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(users UserRepository, bookings BookingRepository) error) error
}
