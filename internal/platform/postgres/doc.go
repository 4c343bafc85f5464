// Package postgres implements the card stores on PostgreSQL through
// database/sql and the pgx stdlib driver, and owns the embedded goose
// migrations that create the per-variant card tables.
package postgres
