package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/rental-invoice/internal/application/service"
	"github.com/garyjia/rental-invoice/internal/config"
	"github.com/garyjia/rental-invoice/internal/domain/document"
	"github.com/garyjia/rental-invoice/internal/infrastructure/logo"
	"github.com/garyjia/rental-invoice/internal/infrastructure/render"
	"github.com/garyjia/rental-invoice/internal/infrastructure/storage"
	httpserver "github.com/garyjia/rental-invoice/internal/interfaces/http"
	"github.com/garyjia/rental-invoice/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
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

	logger.Info("Starting rental invoice editor",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port),
		zap.String("currency", cfg.Invoice.CurrencyCode))

	// Create necessary directories
	if err := os.MkdirAll(cfg.Export.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create export directory", zap.Error(err))
	}

	// Session document
	store := document.NewStore(
		document.NewInvoice(cfg.Invoice.Defaults(), time.Now(), document.NewItemID),
		document.WithItemPlaceholder(cfg.Invoice.ItemPlaceholder),
	)

	// Renderers
	registry := render.NewRegistry(
		render.NewHTMLRenderer(logger),
		render.NewPDFRenderer(logger),
		render.NewXLSXRenderer(logger),
	)

	invoiceService := service.NewInvoiceService(
		store,
		logo.NewReader(cfg.Logo.MaxBytes, logger),
		registry,
		storage.NewLocalFileStorage(cfg.Export.OutputDir, logger),
		cfg.Invoice.Currency(),
		utils.NewKVLogger(logger),
	)
	defer invoiceService.Close()

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		Mode:         cfg.Server.Mode,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		MaxUpload:    cfg.Logo.MaxBytes + 1<<20,
	}, invoiceService, utils.NewKVLogger(logger))

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		return
	}

	logger.Info("Server exited")
}
