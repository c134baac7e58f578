// Package dbx holds the minimal database/sql abstraction shared by
// SQL-backed stores: an interface (DBTX) implemented by both *sql.DB
// and *sql.Tx, so a store can run standalone or inside a transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by our stores.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
