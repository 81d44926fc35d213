// Package logging provides structured logging helpers built on log/slog:
// canonical attribute keys, nil-safe error attributes, PII-free participant
// identifiers, and a small Logger interface for components that should not
// depend on slog directly.
package logging
