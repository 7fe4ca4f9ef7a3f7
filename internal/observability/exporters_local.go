//go:build !gcloud

package observability

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
)

const otlpEndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// newExporters uses OTLP/HTTP when an endpoint is configured. Without one,
// spans and metrics stay in process.
func newExporters(ctx context.Context, _ Config) (exporters, error) {
	if os.Getenv(otlpEndpointEnv) == "" {
		return exporters{}, nil
	}

	spanExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return exporters{}, fmt.Errorf("failed to create otlp trace exporter: %w", err)
	}

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return exporters{}, fmt.Errorf("failed to create otlp metric exporter: %w", err)
	}

	return exporters{
		span:   spanExporter,
		metric: metricExporter,
	}, nil
}
