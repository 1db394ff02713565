// Package logger configures the application's structured logger (log/slog
// with a JSON handler) and carries request-scoped loggers through contexts.
package logger
