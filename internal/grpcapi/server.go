// Package grpcapi runs the gRPC listener. It carries the standard health
// service so load balancers and orchestrators can health-check the process.
package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
)

// ServiceName is the name reported through grpc.health.v1.Health.
const ServiceName = "makerspace"

type Server struct {
	addr   string
	grpc   *grpc.Server
	health *health.Server
	logger zerolog.Logger
}

func NewServer(addr string, logger zerolog.Logger) *Server {
	s := &Server{
		addr:   addr,
		health: health.NewServer(),
		logger: logger.With().Str(mlog.FieldComponent, "grpc").Logger(),
	}
	s.grpc = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logUnary))
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)
	return s
}

// Serve accepts connections on lis until Shutdown is called.
func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.logger.Info().Str("addr", lis.Addr().String()).Msg("grpc listening")
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Start listens on the configured address and serves.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("grpc listen %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

// Shutdown flips health to NOT_SERVING and drains in-flight RPCs, forcing a
// stop if ctx expires first.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.grpc.Stop()
		<-done
	}
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	ev := s.logger.Debug()
	if err != nil {
		ev = s.logger.Warn().Err(err)
	}
	ev.Str("grpc_method", info.FullMethod).
		Str("grpc_code", status.Code(err).String()).
		Dur(mlog.FieldDuration, time.Since(start)).
		Msg("grpc request")
	return resp, err
}
