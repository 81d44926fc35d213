// Package instrumentation provides OpenTelemetry metrics for the report
// pipeline: provider API operation counts and latencies, merged-session
// counts, and emitted report rows.
//
// Both entry points are run-to-completion commands, so metrics are collected
// through a manual reader and optionally dumped to a writer at the end of a
// run instead of being exposed on a scrape endpoint.
package instrumentation
