// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package. It handles query
// execution, mapping between domain entities and database rows, translation
// of PostgreSQL error codes into store errors, and the embedded goose schema
// migrations.
package postgres
