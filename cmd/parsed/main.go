// parsed is the long-running parsing daemon: it serves the HTTP API
// (document parsing, XLSX export, health, metrics) plus a gRPC endpoint
// exposing health and reflection for infra probes.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/Cpaul777/docai-parse-codes/internal/common"
	"github.com/Cpaul777/docai-parse-codes/internal/pipeline"
	"github.com/Cpaul777/docai-parse-codes/internal/repository"
	"github.com/Cpaul777/docai-parse-codes/internal/server"
	"github.com/Cpaul777/docai-parse-codes/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("opening record store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("record store ready", "backend", cfg.Store.Backend)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	pipe := pipeline.New(logger, pipeline.NewMetrics(registry))
	sender := webhook.NewSender(cfg.Webhook, logger)
	api := server.New(logger, pipe, store, sender, registry, cfg.Store.DefaultCollection)

	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("grpc listen", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}
	go func() {
		logger.Info("grpc serving", "addr", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("stopped")
}

func openStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Store.Backend {
	case "postgres":
		return repository.OpenPostgres(ctx, cfg.Store, logger)
	default:
		return repository.OpenSQLite(ctx, cfg.Store.SQLitePath, logger)
	}
}
