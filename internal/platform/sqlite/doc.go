// Package sqlite provides an embedded implementation of the internal/store
// interfaces on SQLite through gorm. It backs the "sqlite" database driver
// and the in-memory databases used by tests.
package sqlite
