package postgres

import (
	"context"
	"database/sql"
)

// Querier is the subset of database/sql operations the repositories use.
// Both *sql.DB and *sql.Tx satisfy it, so every repository can run either
// standalone or transaction-scoped.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
