package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"loan-scorer/internal/api"
	"loan-scorer/internal/api/handlers"
	"loan-scorer/internal/features"
	"loan-scorer/internal/mlmodel"
	"loan-scorer/internal/repository"
	"loan-scorer/internal/service"
	"loan-scorer/internal/upstream"
	"loan-scorer/pkg/config"
	"loan-scorer/pkg/logger"
	"loan-scorer/pkg/metrics"
	"loan-scorer/pkg/postgres"

	"go.uber.org/zap"
)

// @title Loan Scorer API
// @version 1.0
// @description Scoring, import and reporting of loan financing requests

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting loan scorer service")

	// Load model artifacts once; they are read-only afterwards
	scaler, err := mlmodel.LoadScaler(cfg.Model.ScalerPath)
	if err != nil {
		appLogger.Fatal("Failed to load scaler", zap.Error(err))
	}
	model, err := mlmodel.LoadClassifier(cfg.Model.ModelPath)
	if err != nil {
		appLogger.Fatal("Failed to load model", zap.Error(err))
	}
	if err := mlmodel.CheckCompatible(scaler, model, features.Width); err != nil {
		appLogger.Fatal("Model artifacts do not match the feature schema", zap.Error(err))
	}

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	var m *metrics.Manager
	if cfg.Metrics.Enabled {
		m = metrics.NewManager()
	}

	// Initialize repositories
	requestRepo := repository.NewRequestRepository(db, appLogger)

	// Initialize services
	scoringService := service.NewScoringService(scaler, model, m, appLogger)
	source := upstream.NewClient(cfg.Import.SourceURL, cfg.Import.Timeout, appLogger,
		upstream.WithMaxBodyBytes(cfg.Import.MaxBodyBytes))
	importService := service.NewImportService(source, requestRepo, scoringService, cfg.Import.Workers, m, appLogger)
	queryService := service.NewQueryService(requestRepo, m, appLogger)

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Scoring:  handlers.NewScoringHandler(scoringService, appLogger),
		Import:   handlers.NewImportHandler(importService, appLogger),
		Requests: handlers.NewRequestHandler(queryService, appLogger),
		Health:   handlers.NewHealthHandler(db, appLogger),
	}, api.Options{
		ImportRatePerMinute: cfg.Import.RatePerMinute,
		Metrics:             m,
		ReadTimeout:         cfg.Server.ReadTimeout,
		WriteTimeout:        cfg.Server.WriteTimeout,
	}, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
