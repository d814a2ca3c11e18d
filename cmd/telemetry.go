package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// telemetryConfig selects where spans and counters of a run are written.
// Empty paths disable the corresponding output.
type telemetryConfig struct {
	ServiceName string
	RunID       string
	TraceFile   string
	MetricsFile string
}

// startTelemetry installs a file-backed tracer provider and returns the
// function that flushes spans and writes the metrics textfile.
func startTelemetry(cfg telemetryConfig) (func(context.Context) error, error) {
	var shutdownFuncs []func(context.Context) error

	if cfg.TraceFile != "" {
		// #nosec G304 - trace file comes from the operator's configuration
		traceFile, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}

		exporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
		if err != nil {
			_ = traceFile.Close()
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}

		res := resource.NewWithAttributes(
			"",
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("mutfix.run", cfg.RunID),
		)

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)

		shutdownFuncs = append(shutdownFuncs, tp.Shutdown, func(context.Context) error {
			return traceFile.Close()
		})
	}

	if cfg.MetricsFile != "" {
		shutdownFuncs = append(shutdownFuncs, func(context.Context) error {
			return prometheus.WriteToTextfile(cfg.MetricsFile, prometheus.DefaultGatherer)
		})
	}

	return func(ctx context.Context) error {
		var errs []error

		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}

		if err := errors.Join(errs...); err != nil {
			slog.Warn("Failed to flush telemetry", "error", err)
			return err
		}

		return nil
	}, nil
}
