package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	platformgrpc "github.com/louisbranch/glog-chargen/internal/platform/grpc"
	"github.com/louisbranch/glog-chargen/internal/platform/timeouts"
	chargenservice "github.com/louisbranch/glog-chargen/internal/services/chargen/api/grpc/chargen"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"github.com/louisbranch/glog-chargen/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
)

const (
	// serverName identifies the MCP server to clients.
	serverName = "glog-chargen"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

// TransportStdio uses standard input/output for MCP.
const TransportStdio TransportKind = "stdio"

// Config configures the MCP process.
type Config struct {
	// GRPCAddr is the chargen gRPC server address.
	GRPCAddr  string
	Transport TransportKind
}

// Server hosts the character tools over MCP.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
}

// grpcCharacterClient narrows the gRPC client to domain.CharacterClient.
type grpcCharacterClient struct {
	client *chargenservice.Client
}

func (c grpcCharacterClient) Generate(ctx context.Context, req generation.Request) (generation.Result, error) {
	return c.client.Generate(ctx, req)
}

func (c grpcCharacterClient) DescribeRuleset(ctx context.Context) (ruleset.Config, error) {
	return c.client.DescribeRuleset(ctx)
}

// New dials the chargen server at grpcAddr and returns a configured MCP server.
func New(ctx context.Context, grpcAddr string) (*Server, error) {
	conn, err := dialCharacterService(ctx, grpcAddr)
	if err != nil {
		return nil, err
	}
	server := newServer(grpcCharacterClient{client: chargenservice.NewClient(conn)})
	server.conn = conn
	return server, nil
}

// newServer registers the character tools backed by client.
func newServer(client domain.CharacterClient) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(mcpServer, domain.GenerateCharactersTool(), domain.GenerateCharactersHandler(client))
	mcp.AddTool(mcpServer, domain.RulesetDescribeTool(), domain.RulesetDescribeHandler(client))
	return &Server{mcpServer: mcpServer}
}

// Run dials the chargen server and serves MCP on the configured transport.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
	server, err := New(ctx, cfg.GRPCAddr)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}

// serveWithTransport runs the MCP server on transport and closes the gRPC
// connection when it stops.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if closeErr := s.Close(); closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close gRPC connection: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func dialCharacterService(ctx context.Context, addr string) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	conn, err := platformgrpc.Dial(ctx, platformgrpc.DialConfig{
		Addr:    addr,
		Service: chargenservice.ServiceName,
		Timeout: timeouts.GRPCDial,
		Logf: func(format string, args ...any) {
			log.Printf("chargen %s", fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageConnect {
			return nil, fmt.Errorf("connect to chargen server at %s: %w", addr, dialErr.Err)
		}
		return nil, err
	}
	return conn, nil
}
