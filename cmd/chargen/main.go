// Package main runs the interactive character generator.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	clicmd "github.com/louisbranch/glog-chargen/internal/cmd/cli"
	"github.com/louisbranch/glog-chargen/internal/platform/config"
)

func main() {
	cfg, err := clicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CHARGEN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = clicmd.Run(ctx, cfg)
	stop()
	config.Exit(err)
}
