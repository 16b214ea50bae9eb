// Package logging assembles the structured slog loggers used across the
// toolkit.
//
// It centralizes level and format plumbing (console text or JSON, optional
// log-file mirroring) and provides a no-op logger for tests. Prefer these
// constructors over hand-rolled slog setup so every command emits log lines
// with the same shape.
package logging
