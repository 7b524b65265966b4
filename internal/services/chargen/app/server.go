// Package server wires the character generator gRPC and HTTP lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/louisbranch/glog-chargen/internal/platform/timeouts"
	chargenservice "github.com/louisbranch/glog-chargen/internal/services/chargen/api/grpc/chargen"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/domain/ruleset"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/generation"
	"github.com/louisbranch/glog-chargen/internal/services/chargen/transport/httpapi"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config describes the listeners and ruleset the server uses.
type Config struct {
	GRPCAddr string
	HTTPAddr string
	Rules    ruleset.Config
	// Options tune the generation service, mainly for tests.
	Options []generation.Option
}

// Server hosts the character gRPC API and the HTTP surface.
type Server struct {
	grpcListener net.Listener
	httpListener net.Listener
	grpcServer   *grpc.Server
	httpServer   *http.Server
	health       *health.Server
}

// New creates a configured server bound to both listeners.
func New(cfg Config) (*Server, error) {
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}
	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = grpcListener.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
	}

	svc := generation.NewService(cfg.Rules, cfg.Options...)

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	chargenservice.RegisterCharacterServiceServer(grpcServer, chargenservice.NewService(svc))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(chargenservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	httpServer := &http.Server{
		Handler:           httpapi.NewHandler(svc),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		grpcListener: grpcListener,
		httpListener: httpListener,
		grpcServer:   grpcServer,
		httpServer:   httpServer,
		health:       healthServer,
	}, nil
}

// GRPCAddr returns the gRPC listener address.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// HTTPAddr returns the HTTP listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Run creates and serves a server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs both listeners until ctx is cancelled or either one fails.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("chargen gRPC listening at %v", s.grpcListener.Addr())
	log.Printf("chargen HTTP listening at http://%v", s.httpListener.Addr())

	serveErr := make(chan error, 2)
	go func() {
		err := s.grpcServer.Serve(s.grpcListener)
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErr <- fmt.Errorf("serve gRPC: %w", err)
			return
		}
		serveErr <- nil
	}()
	go func() {
		err := s.httpServer.Serve(s.httpListener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("serve HTTP: %w", err)
			return
		}
		serveErr <- nil
	}()

	pending := 2
	var result error
	select {
	case <-ctx.Done():
	case result = <-serveErr:
		pending--
	}

	s.shutdown()
	for ; pending > 0; pending-- {
		if err := <-serveErr; err != nil && result == nil {
			result = err
		}
	}
	return result
}

func (s *Server) shutdown() {
	if s.health != nil {
		s.health.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown HTTP server: %v", err)
	}
	s.grpcServer.GracefulStop()
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
}
