// Package cmd holds the startup steps shared by the chargen commands: loading
// configuration from env and flags, then running under a tracer provider.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/louisbranch/glog-chargen/internal/platform/config"
	"github.com/louisbranch/glog-chargen/internal/platform/otel"
	"github.com/louisbranch/glog-chargen/internal/platform/timeouts"
)

// Service names a chargen process in traces and logs.
type Service string

const (
	ServiceCLI    Service = "chargen-cli"
	ServiceServer Service = "chargen"
	ServiceMCP    Service = "chargen-mcp"
)

// Load reads the environment into cfg, then calls bind so it can register
// flags defaulting to the env values, then parses args. Flags win over env.
func Load[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) error {
	if cfg == nil || fs == nil {
		return errors.New("config target and flag set are required")
	}
	if err := config.ParseEnv(cfg); err != nil {
		return err
	}
	if bind != nil {
		bind(fs, cfg)
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry installs tracing for service, runs fn, and flushes spans
// once fn returns.
func RunWithTelemetry(ctx context.Context, service Service, fn func(context.Context) error) error {
	if service == "" {
		return errors.New("service name is required")
	}
	if fn == nil {
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := otel.Setup(ctx, string(service))
	if err != nil {
		return err
	}
	defer flush(service, shutdown)
	return fn(ctx)
}

func flush(service Service, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("telemetry flush failed service=%s err=%v", service, err)
	}
}
