package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations shared by pools and transactions.
// Collaborators that must participate in a single atomic scope accept a
// Querier so the caller can thread one pgx.Tx through every lookup.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBTX is the connection-pool surface repositories are constructed with.
// Both *pgxpool.Pool and pgxmock.PgxPoolIface satisfy it, which lets
// repository tests run against a mock pool.
type DBTX interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}
