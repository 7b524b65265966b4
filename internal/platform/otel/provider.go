// Package otel configures OpenTelemetry tracing for chargen processes.
package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/glog-chargen/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName scopes tracers created by Tracer.
const instrumentationName = "github.com/louisbranch/glog-chargen"

type settings struct {
	Endpoint    string  `env:"GLOG_CHARGEN_OTEL_ENDPOINT"`
	Enabled     string  `env:"GLOG_CHARGEN_OTEL_ENABLED"`
	SampleRatio float64 `env:"GLOG_CHARGEN_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

func (s settings) active() bool {
	return strings.TrimSpace(s.Endpoint) != "" && !strings.EqualFold(strings.TrimSpace(s.Enabled), "false")
}

func (s settings) sampler() (sdktrace.Sampler, error) {
	if s.SampleRatio < 0 || s.SampleRatio > 1 {
		return nil, fmt.Errorf("otel sample ratio %v must be between 0 and 1", s.SampleRatio)
	}
	if s.SampleRatio == 1 {
		return sdktrace.AlwaysSample(), nil
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio)), nil
}

func noopShutdown(context.Context) error { return nil }

// Setup registers a global tracer provider exporting OTLP over HTTP to
// GLOG_CHARGEN_OTEL_ENDPOINT. With no endpoint, or GLOG_CHARGEN_OTEL_ENABLED
// set to "false", nothing is registered and the returned shutdown is a no-op.
// GLOG_CHARGEN_OTEL_SAMPLE_RATIO samples a fraction of root traces.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	var s settings
	if err := config.ParseEnv(&s); err != nil {
		return noopShutdown, err
	}
	if !s.active() {
		return noopShutdown, nil
	}
	sampler, err := s.sampler()
	if err != nil {
		return noopShutdown, err
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(s.Endpoint)))
	if err != nil {
		return noopShutdown, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noopShutdown, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Tracer returns a tracer from the global provider for the named component.
// It is a no-op tracer until Setup registers a provider.
func Tracer(component string) trace.Tracer {
	return otel.Tracer(instrumentationName + "/" + strings.TrimSpace(component))
}
