package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/contratacao-empresa/assets"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/broker/rabbitmq"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/http/handler"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/repository/postgres"
	"github.com/ogurasousui/contratacao-empresa/internal/core/company"
	"github.com/ogurasousui/contratacao-empresa/internal/core/employee"
	"github.com/ogurasousui/contratacao-empresa/internal/core/events"
	"github.com/ogurasousui/contratacao-empresa/internal/platform/config"
	pg "github.com/ogurasousui/contratacao-empresa/internal/platform/db/postgres"
	"github.com/ogurasousui/contratacao-empresa/internal/platform/logger"
	"github.com/ogurasousui/contratacao-empresa/internal/platform/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	var publisher events.Publisher = events.Noop{}
	if cfg.Broker.URL != "" {
		rabbit, err := rabbitmq.NewPublisher(cfg.Broker.URL, cfg.Broker.Queue, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := rabbit.Close(); err != nil {
				log.Warn("failed to close broker connection", slog.Any("error", err))
			}
		}()
		publisher = rabbit
		log.Info("publishing domain events", slog.String("queue", cfg.Broker.Queue))
	}

	txManager := pg.NewTransactionManager(dbPool)
	companySvc := company.NewService(postgres.NewCompanyRepository(dbPool), nil, txManager, publisher)
	employeeSvc := employee.NewService(postgres.NewEmployeeRepository(dbPool), nil, txManager, publisher)

	docs, err := handler.NewAPIDocsHandler(assets.OpenAPI)
	if err != nil {
		return err
	}

	httpServer := server.NewHTTP(cfg.Server, server.Handlers{
		Companies: handler.NewCompanyHandler(companySvc),
		Employees: handler.NewEmployeeHandler(employeeSvc),
		Health:    handler.NewHealthHandler(dbPool),
		Docs:      docs,
	}, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", slog.String("addr", cfg.Server.ListenAddr))
		return httpServer.Run(gctx)
	})

	if cfg.GRPC.ListenAddr != "" {
		grpcServer := server.NewGRPC(cfg.GRPC.ListenAddr, dbPool)
		g.Go(func() error {
			log.Info("gRPC health server listening", slog.String("addr", cfg.GRPC.ListenAddr))
			return grpcServer.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
