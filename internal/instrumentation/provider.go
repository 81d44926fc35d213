package instrumentation

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const meterName = "github.com/englishbay/zoomreport"

// Provider owns the metric SDK pipeline for one run. A disabled Provider is
// valid and leaves the no-op global meter provider in place.
type Provider struct {
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader
	enabled  bool
}

// NewProvider creates the metric pipeline. When enabled is false all
// instruments resolve to no-ops and Dump writes nothing.
func NewProvider(enabled bool) *Provider {
	if !enabled {
		return &Provider{}
	}

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)

	return &Provider{
		provider: mp,
		reader:   reader,
		enabled:  true,
	}
}

// Enabled reports whether metrics are being collected.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Meter returns the application meter.
func (p *Provider) Meter() metric.Meter {
	return otel.Meter(meterName)
}

// NewMetrics creates the application metrics on this provider's meter.
// Returns nil (record nothing) when the provider is disabled.
func (p *Provider) NewMetrics() (*Metrics, error) {
	if !p.Enabled() {
		return nil, nil
	}
	return NewMetrics(p.Meter())
}

// Dump collects all recorded metrics and writes them to w in the stdout
// exporter's JSON encoding. It is a no-op for a disabled provider.
func (p *Provider) Dump(ctx context.Context, w io.Writer) error {
	if !p.Enabled() {
		return nil
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return fmt.Errorf("failed to collect metrics: %w", err)
	}

	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(w),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		return fmt.Errorf("failed to create stdout metric exporter: %w", err)
	}

	if err := exporter.Export(ctx, &rm); err != nil {
		return fmt.Errorf("failed to export metrics: %w", err)
	}
	return exporter.Shutdown(ctx)
}

// Shutdown flushes and stops the metric pipeline.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
