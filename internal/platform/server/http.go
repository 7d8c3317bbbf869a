package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/http/handler"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/http/middleware"
	"github.com/ogurasousui/contratacao-empresa/internal/platform/config"
)

// Handlers は HTTP サーバーに登録するハンドラ群です。
type Handlers struct {
	Companies *handler.CompanyHandler
	Employees *handler.EmployeeHandler
	Health    *handler.HealthHandler
	Docs      *handler.APIDocsHandler
}

// HTTPServer は REST API サーバーのライフサイクルを管理します。
type HTTPServer struct {
	cfg    config.ServerConfig
	echo   *echo.Echo
	logger *slog.Logger
}

// NewHTTP はミドルウェアとルーティングを設定した echo サーバーを構築します。
func NewHTTP(cfg config.ServerConfig, h Handlers, logger *slog.Logger) *HTTPServer {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.Server.ReadHeaderTimeout = cfg.ReadHeaderTimeout

	e.Use(echomw.Recover())
	e.Use(middleware.StructuredLogger(logger))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	handler.Register(e, h.Companies, h.Employees, h.Health, h.Docs)

	return &HTTPServer{cfg: cfg, echo: e, logger: logger}
}

// Handler はテストなどから直接利用するための http.Handler を返します。
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Run はサーバーを起動し、コンテキストがキャンセルされると ShutdownTimeout 以内に停止します。
func (s *HTTPServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr, err)
	}
	return s.serve(ctx, lis)
}

func (s *HTTPServer) serve(ctx context.Context, lis net.Listener) error {
	s.echo.Listener = lis

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start("")
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve HTTP: %w", err)
	}
	return nil
}
