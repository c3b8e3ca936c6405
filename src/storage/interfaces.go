package storage

import (
	"context"
	"database/sql"
)

// Execer runs statements that write. Both *sql.DB and *sql.Tx satisfy it, so
// the query functions work inside and outside a transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
