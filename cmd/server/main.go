package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/config"
	"github.com/garyjia/stocklist/internal/ingest"
	"github.com/garyjia/stocklist/internal/report"
	"github.com/garyjia/stocklist/internal/repository"
	"github.com/garyjia/stocklist/internal/segment"
	"github.com/garyjia/stocklist/internal/server"
	"github.com/garyjia/stocklist/pkg/database"
	"github.com/garyjia/stocklist/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting stock list service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Wire the generation pipeline
	rules := segment.LoadRules(cfg.Segment.RulesPath, logger)
	extractor := segment.NewExtractor(rules, logger)
	reader := ingest.NewReader(extractor, logger)
	generator := report.NewGenerator(report.Config{
		InputFile:    cfg.Report.InputFile,
		OutputDir:    cfg.Report.OutputDir,
		OutputPrefix: cfg.Report.OutputPrefix,
		UseTimestamp: cfg.Report.UseTimestamp,
	}, reader, logger)

	runRepo := repository.NewRunRepository(db.DB, logger)
	service := server.NewGenerationService(generator, runRepo, extractor, cfg.Segment.RulesPath, logger)
	handlers := server.NewHandlers(service, runRepo, logger)

	srv := server.NewServer(server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, logger)

	// Run until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
