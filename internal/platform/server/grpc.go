package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	pgdb "github.com/ogurasousui/contratacao-empresa/internal/platform/db/postgres"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

const healthCheckTimeout = 2 * time.Second

// GRPCServer はヘルスチェック用 gRPC サーバーのライフサイクルを管理します。
type GRPCServer struct {
	listenAddr string
	grpcServer *grpc.Server
}

// NewGRPC は grpc.health.v1.Health とリフレクションを登録した gRPC サーバーを構築します。
func NewGRPC(listenAddr string, db pgdb.Pinger, opts ...grpc.ServerOption) *GRPCServer {
	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, &healthServer{db: db})
	reflection.Register(srv)

	return &GRPCServer{
		listenAddr: listenAddr,
		grpcServer: srv,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.serve(ctx, lis)
}

func (s *GRPCServer) serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.grpcServer.GracefulStop()
	}()

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// healthServer は DB への ping 結果を SERVING / NOT_SERVING として返します。
// サービス名は空文字 (サーバー全体) のみを受け付けます。
type healthServer struct {
	healthpb.UnimplementedHealthServer
	db pgdb.Pinger
}

func (h *healthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if req.GetService() != "" {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
		}
	}

	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}
