// Package mcp parses MCP command flags and serves the character tools.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/glog-chargen/internal/platform/cmd"
	mcpservice "github.com/louisbranch/glog-chargen/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	Addr      string `env:"GLOG_CHARGEN_GRPC_ADDR"     envDefault:"localhost:8095"`
	Transport string `env:"GLOG_CHARGEN_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.Load(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "chargen gRPC server address")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio")
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			GRPCAddr:  cfg.Addr,
			Transport: mcpservice.TransportKind(cfg.Transport),
		})
	})
}
