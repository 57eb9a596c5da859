package db

import (
	"context"
	"database/sql"
)

// Runner is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories take a Runner so the same query code runs standalone or
// inside a caller-owned transaction.
type Runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Runner = (*sql.DB)(nil)
	_ Runner = (*sql.Tx)(nil)
)

// NullIfEmpty stores optional strings as NULL instead of "".
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
