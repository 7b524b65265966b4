// Package server parses chargen server flags and launches the gRPC and HTTP listeners.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"

	entrypoint "github.com/louisbranch/glog-chargen/internal/platform/cmd"
	chargenapp "github.com/louisbranch/glog-chargen/internal/services/chargen/app"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
)

// Config holds server command configuration.
type Config struct {
	RulesetPath string `env:"GLOG_CHARGEN_RULESET_PATH"`
	GRPCPort    int    `env:"GLOG_CHARGEN_GRPC_PORT"    envDefault:"8095"`
	HTTPAddr    string `env:"GLOG_CHARGEN_HTTP_ADDR"    envDefault:":3000"`
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
	fs.StringVar(&cfg.RulesetPath, "ruleset", cfg.RulesetPath, "YAML ruleset file (default: embedded ruleset)")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "The chargen gRPC server port")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The chargen HTTP server address")
}

// Run loads the ruleset and serves until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		appCfg, err := appConfig(cfg)
		if err != nil {
			return err
		}
		log.Printf("chargen starting grpc_addr=%s http_addr=%s ruleset=%s", appCfg.GRPCAddr, appCfg.HTTPAddr, rulesetLabel(cfg.RulesetPath))
		return chargenapp.Run(ctx, appCfg)
	})
}

func appConfig(cfg Config) (chargenapp.Config, error) {
	if cfg.GRPCPort < 0 || cfg.GRPCPort > 65535 {
		return chargenapp.Config{}, fmt.Errorf("grpc port %d is out of range", cfg.GRPCPort)
	}
	rules, err := ruleset.LoadFile(cfg.RulesetPath)
	if err != nil {
		return chargenapp.Config{}, err
	}
	return chargenapp.Config{
		GRPCAddr: fmt.Sprintf(":%d", cfg.GRPCPort),
		HTTPAddr: cfg.HTTPAddr,
		Rules:    rules,
	}, nil
}

func rulesetLabel(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
