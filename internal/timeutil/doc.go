// Package timeutil converts provider UTC timestamps into the reporting
// timezone for display and parses lookback-window inputs like "2h" or "1d".
//
// Conversion never fails from the caller's point of view: empty or
// unparseable input falls back to the literal "Unknown" or to the original
// (possibly truncated) string, so downstream report fields are always
// populated.
package timeutil
