// Package postgres contains the PostgreSQL-backed implementations of the
// store interfaces. They run over database/sql with the pgx stdlib driver
// and translate driver-level failures (e.g. unique violations) into the
// store package's sentinel errors exactly once, at this boundary.
package postgres
