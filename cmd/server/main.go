package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/Tareqhaboukh/project-one/internal/analytics"
	"github.com/Tareqhaboukh/project-one/internal/assistant"
	"github.com/Tareqhaboukh/project-one/internal/auth"
	"github.com/Tareqhaboukh/project-one/internal/config"
	httpserver "github.com/Tareqhaboukh/project-one/internal/interfaces/http"
	"github.com/Tareqhaboukh/project-one/internal/invoice"
	"github.com/Tareqhaboukh/project-one/internal/repository"
	"github.com/Tareqhaboukh/project-one/internal/seed"
	"github.com/Tareqhaboukh/project-one/internal/storage"
	"github.com/Tareqhaboukh/project-one/pkg/database"
	"github.com/Tareqhaboukh/project-one/pkg/utils"
)

func main() {
	// Local development secrets live in .env; absence is fine in production
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

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

	logger.Info("Starting vendor and invoice tracker",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

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

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		logger.Fatal("Failed to create upload directory", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db.DB, logger)
	vendorRepo := repository.NewVendorRepository(db.DB, logger)
	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)
	analyticsRepo := repository.NewAnalyticsRepository(db.DB, logger)

	if cfg.Database.Seed {
		seeder := seed.NewSeeder(userRepo, vendorRepo, invoiceRepo, logger)
		if err := seeder.Run(); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	deps := httpserver.Deps{
		Auth:      auth.NewService(userRepo, logger),
		Users:     userRepo,
		Vendors:   vendorRepo,
		Invoices:  invoiceRepo,
		Analytics: analytics.NewService(analyticsRepo, logger),
		Exporter:  analytics.NewExporter(logger),
		Parser:    invoice.NewParser(logger),
		Storage:   storage.NewLocalFileStorage(cfg.Upload.Dir, logger),
	}

	if cfg.OpenAI.APIKey != "" {
		deps.Assistant = assistant.New(cfg.OpenAI.APIKey, assistant.Config{
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			MaxTokens:   cfg.OpenAI.MaxTokens,
		}, vendorRepo, invoiceRepo, analyticsRepo, logger)
	} else {
		logger.Warn("OPENAI_API_KEY not set, assistant endpoint disabled")
	}

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		SessionSecret: cfg.Session.Secret,
		CookieName:    cfg.Session.CookieName,
		SessionMaxAge: cfg.Session.MaxAge,
		MaxUploadSize: cfg.Upload.MaxSizeBytes,
		AskTimeout:    cfg.OpenAI.Timeout,
	}, deps, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
