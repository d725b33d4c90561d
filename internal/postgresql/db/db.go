package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// New instantiates the Queries type using the received database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries bundles the SQL statements used by the stores.
type Queries struct {
	db DBTX
}
