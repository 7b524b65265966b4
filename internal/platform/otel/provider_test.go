package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/glog-chargen/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_OTEL_ENDPOINT", "")
	t.Setenv("GLOG_CHARGEN_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("GLOG_CHARGEN_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("GLOG_CHARGEN_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsBadSampleRatio(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("GLOG_CHARGEN_OTEL_ENABLED", "")
	t.Setenv("GLOG_CHARGEN_OTEL_SAMPLE_RATIO", "1.5")

	shutdown, err := otel.Setup(context.Background(), "ratio-test")
	if err == nil {
		t.Fatal("expected sample ratio error")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown error: %v", err)
	}
}

func TestSetup_SampleRatioIgnoredWhenDisabled(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_OTEL_ENDPOINT", "")
	t.Setenv("GLOG_CHARGEN_OTEL_SAMPLE_RATIO", "7")

	if _, err := otel.Setup(context.Background(), "ratio-test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetup_FractionalSampleRatio(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("GLOG_CHARGEN_OTEL_ENABLED", "")
	t.Setenv("GLOG_CHARGEN_OTEL_SAMPLE_RATIO", "0.25")

	shutdown, err := otel.Setup(context.Background(), "ratio-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	t.Setenv("GLOG_CHARGEN_OTEL_ENDPOINT", "")
	t.Setenv("GLOG_CHARGEN_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "noop-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestTracerStartsSpanWithoutProvider(t *testing.T) {
	ctx, span := otel.Tracer("test").Start(context.Background(), "span")
	defer span.End()
	if ctx == nil {
		t.Fatal("expected span context")
	}
}
