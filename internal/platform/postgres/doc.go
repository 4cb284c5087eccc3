// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces. All SQL lives here; ownership scoping is compiled
// into the statements themselves so a fetch and its ownership check are
// a single atomic operation.
package postgres
