package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrOperation = "operation"
	attrStatus    = "status"
)

// Status values for the operation counter.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics provides methods for recording observability metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	apiOperationsTotal   metric.Int64Counter
	apiOperationDuration metric.Float64Histogram
	sessionsMergedTotal  metric.Int64Counter
	reportRowsTotal      metric.Int64Counter
}

// NewMetrics creates a Metrics instance with all instruments initialized on
// the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.apiOperationsTotal, err = meter.Int64Counter(
		"zoom_api_operations_total",
		metric.WithDescription("Total number of Zoom API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoom_api_operations_total counter: %w", err)
	}

	m.apiOperationDuration, err = meter.Float64Histogram(
		"zoom_api_operation_duration_seconds",
		metric.WithDescription("Zoom API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoom_api_operation_duration_seconds histogram: %w", err)
	}

	m.sessionsMergedTotal, err = meter.Int64Counter(
		"sessions_merged_total",
		metric.WithDescription("Number of duplicate participant sessions collapsed during merging"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sessions_merged_total counter: %w", err)
	}

	m.reportRowsTotal, err = meter.Int64Counter(
		"report_rows_total",
		metric.WithDescription("Number of attendance report rows emitted"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report_rows_total counter: %w", err)
	}

	return m, nil
}

// RecordAPIOperation records one provider API call with its outcome and
// duration.
func (m *Metrics) RecordAPIOperation(ctx context.Context, operation, status string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	)
	m.apiOperationsTotal.Add(ctx, 1, attrs)
	m.apiOperationDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordMergedSessions records the number of duplicate sessions collapsed
// within one occurrence.
func (m *Metrics) RecordMergedSessions(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sessionsMergedTotal.Add(ctx, int64(n))
}

// RecordReportRows records the number of rows in an assembled report.
func (m *Metrics) RecordReportRows(ctx context.Context, n int) {
	if m == nil || n < 0 {
		return
	}
	m.reportRowsTotal.Add(ctx, int64(n))
}
