// Package logging assembles structured slog loggers and formatting helpers used
// across kindleshelf.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so collection and merge code can tag log
// lines with the current run ID and input source. The package also provides a
// no-op logger for tests and for library code that is called without one.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
