package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/user/glue-crawler-service/internal/adapter/glue_crawler"
	"github.com/user/glue-crawler-service/internal/delivery/http/handler"
	"github.com/user/glue-crawler-service/internal/delivery/http/router"
	"github.com/user/glue-crawler-service/internal/usecase"
	"github.com/user/glue-crawler-service/pkg/config"
	"github.com/user/glue-crawler-service/pkg/logger"
	"github.com/user/glue-crawler-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log.Info("Logger initialized", zap.String("level", cfg.LogLevel))

	// --- Metrics ---
	m := metrics.New(prometheus.DefaultRegisterer)

	// --- Crawler API client ---
	glueClient := glue_crawler.NewGlueClient(cfg)
	crawlerRepo := glue_crawler.NewCrawlerRepo(glueClient)
	log.Info("Glue client configured",
		zap.String("region", cfg.AWSRegion),
		zap.String("endpoint", cfg.GlueEndpoint),
	)

	// --- Use Cases ---
	crawlers := usecase.NewCrawlerManager(crawlerRepo, m, log)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(crawlers, log)
	httpRouter := router.New(apiHandler, cfg.BasePath, m, promhttp.Handler(), log)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("port", cfg.ServerPort), zap.String("base_path", cfg.BasePath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Could not listen on port", zap.String("port", cfg.ServerPort), zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exiting")
}
