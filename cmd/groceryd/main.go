package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/narayan09-boop/GroceryIntelligence/internal/budget"
	"github.com/narayan09-boop/GroceryIntelligence/internal/categorize"
	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
	"github.com/narayan09-boop/GroceryIntelligence/internal/export"
	"github.com/narayan09-boop/GroceryIntelligence/internal/nutrition"
	"github.com/narayan09-boop/GroceryIntelligence/internal/ocr"
	"github.com/narayan09-boop/GroceryIntelligence/internal/parse"
	"github.com/narayan09-boop/GroceryIntelligence/internal/pipeline"
	"github.com/narayan09-boop/GroceryIntelligence/internal/repository"
	"github.com/narayan09-boop/GroceryIntelligence/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig("")
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Config{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, logger)
	if err != nil {
		logger.Error("open db", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("close db", "error", cerr)
		}
	}()

	analyzer, err := nutrition.NewAnalyzer()
	if err != nil {
		logger.Error("load nutrition data", "error", err)
		os.Exit(1)
	}

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		WorkDir:     cfg.OCR.WorkDir,
		Timeout:     cfg.OCR.Timeout,
	}, logger)
	parser := parse.NewParser(logger)
	processor := pipeline.NewProcessor(extractor, parser, logger)

	receiptsRepo := repository.NewReceiptRepository(db, logger)
	budgetsRepo := repository.NewBudgetRepository(db, logger)
	budgetSvc := budget.NewService(receiptsRepo, budgetsRepo, cfg.Budget.DefaultMonthly, logger)
	exportSvc := export.NewService(receiptsRepo, logger)

	engine := server.Setup(
		logger,
		server.NewReceiptHandler(processor, categorize.NewCategorizer(), analyzer, receiptsRepo, cfg.Server.MaxUploadBytes, logger),
		server.NewAnalyticsHandler(receiptsRepo, logger),
		server.NewBudgetHandler(budgetSvc, logger),
		server.NewExportHandler(exportSvc, logger),
		server.NewHealthHandler(db),
	)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}
	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
		os.Exit(1)
	}
}
