// Package tracing sets up the OpenTelemetry tracer provider for cluster and
// page lifecycle spans.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"balloonsim/log"
)

// DefaultServiceName identifies balloonsim in exported spans
const DefaultServiceName = "balloonsim"

// Config selects the exporter
type Config struct {
	// Exporter is "none", "stdout" or "file"; empty means none
	Exporter string

	// FilePath receives one JSON span per line for the file exporter
	FilePath string

	ServiceName string
}

// Provider owns the tracer provider installed as the global one
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	file     io.Closer
}

// NewProvider builds a provider for cfg and installs it globally. With no
// exporter the global provider is a no-op.
func NewProvider(cfg Config) (*Provider, error) {
	name := cfg.ServiceName
	if name == "" {
		name = DefaultServiceName
	}

	var (
		exporter sdktrace.SpanExporter
		file     *os.File
		err      error
	)
	switch cfg.Exporter {
	case "", "none":
		np := noop.NewTracerProvider()
		otel.SetTracerProvider(np)
		return &Provider{tracer: np.Tracer(name)}, nil
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "file":
		if cfg.FilePath == "" {
			return nil, errors.New("file_path required for file exporter")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("creating trace directory: %w", err)
		}
		file, err = os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening trace file: %w", err)
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(file))
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("creating %s exporter: %w", cfg.Exporter, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	log.Info(log.CatTrace, "tracing enabled", "exporter", cfg.Exporter, "path", cfg.FilePath)

	p := &Provider{provider: tp, tracer: tp.Tracer(name)}
	if file != nil {
		p.file = file
	}
	return p, nil
}

// Tracer returns the provider's tracer; it is a no-op when tracing is off
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are exported
func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes pending spans and closes the trace file
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.provider != nil {
		if err := p.provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down tracer provider: %w", err))
		}
		p.provider = nil
	}
	if p.file != nil {
		if err := p.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing trace file: %w", err))
		}
		p.file = nil
	}
	return errors.Join(errs...)
}
