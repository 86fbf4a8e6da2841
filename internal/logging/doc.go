// Package logging assembles the structured slog loggers used across lathe.
//
// It owns the console/JSON handler selection (including terminal detection
// for the "auto" format), centralizes level and output plumbing, and provides
// a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape and routing.
package logging
