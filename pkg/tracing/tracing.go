// Package tracing creates an OpenTelemetry tracer which exports spans to an
// OTLP/HTTP collector.
package tracing

import (
	"context"
	"strings"

	// Packages
	assistant "github.com/mutablelogic/go-assistant"
	attribute "go.opentelemetry.io/otel/attribute"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Provider exports spans for a named service until it is shut down
type Provider struct {
	provider *sdktrace.TracerProvider
	name     string
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a provider exporting to the collector at endpoint, which is a
// URL such as http://localhost:4318
func New(ctx context.Context, endpoint, service, version string) (*Provider, error) {
	if endpoint = strings.TrimSpace(endpoint); endpoint == "" {
		return nil, assistant.ErrBadParameter.With("missing collector endpoint")
	}
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	return &Provider{
		name: service,
		provider: sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", service),
				attribute.String("service.version", version),
			)),
		),
	}, nil
}

// Shutdown flushes pending spans and stops the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tracer returns the tracer for the service
func (p *Provider) Tracer() trace.Tracer {
	return p.provider.Tracer(p.name)
}
