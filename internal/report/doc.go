// Package report implements the attendance report core: collapsing raw
// per-participant join/leave sessions into one attendance record per logical
// attendee, resolving meeting occurrences from overlapping provider queries,
// and assembling the flat row/name output consumed by the report sinks.
//
// The package performs no I/O. Meeting data is supplied through the Source
// interface; timezone display conversion is delegated to a timeutil.Converter.
// None of the operations in this package can fail: degenerate input (empty
// lists, missing fields) maps to well-defined default output.
package report
