// Package timeouts defines the durations shared by chargen processes.
package timeouts

import "time"

// GRPCDial caps connecting to the chargen server plus its health wait.
const GRPCDial = 5 * time.Second

// GRPCRequest caps a single gRPC call made on behalf of an MCP tool.
const GRPCRequest = 5 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 10 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
