package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	_ "github.com/MuhamadAgungGumelar/household-finance-be/docs"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/extraction"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/jobs"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/scheduler"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/handlers"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/repositories"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/database"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/utils"
)

// @title Household Finance API
// @version 1.0
// @description Receipt import and expense tracking for Brazilian fiscal receipts
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}
	defer db.Close()

	// OCR
	ocrProvider, err := ocr.NewProvider(ocr.Options{
		Provider:          cfg.OCRProvider,
		GoogleVisionKey:   cfg.GoogleVisionAPIKey,
		OCRSpaceKey:       cfg.OCRSpaceAPIKey,
		TesseractLanguage: cfg.TesseractLanguage,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize OCR provider")
	}
	var ocrCache *ocr.CachedProvider
	if cfg.OCRCachePath != "" {
		ocrCache, err = ocr.NewCachedProvider(ocrProvider, cfg.OCRCachePath)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to open OCR cache")
		}
		defer ocrCache.Close()
		ocrProvider = ocrCache
	}
	ocrService := ocr.NewService(ocrProvider)
	log.Info().Str("provider", ocrService.GetProviderName()).Msg("✅ OCR provider ready")

	// Structured extraction
	extractOpts := extraction.Options{
		Provider:       cfg.ExtractionProvider,
		VeryfiBaseURL:  cfg.VeryfiBaseURL,
		VeryfiClientID: cfg.VeryfiClientID,
		VeryfiUsername: cfg.VeryfiUsername,
		VeryfiAPIKey:   cfg.VeryfiAPIKey,
		GeminiAPIKey:   cfg.GeminiAPIKey,
		GeminiModel:    cfg.GeminiModel,
		OCR:            ocrService,
	}
	if cfg.ExtractionProvider == "llm" {
		llmService, err := llm.NewService(&llm.ProviderConfig{
			Type:        llm.ProviderType(cfg.LLMProvider),
			APIKey:      cfg.OpenAIKey,
			Model:       cfg.LLMModel,
			Temperature: 0,
			MaxTokens:   2000,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to initialize LLM provider")
		}
		extractOpts.LLM = llmService
	}
	extractor, err := extraction.NewExtractor(ctx, extractOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize extraction provider")
	}
	extractionName := "none"
	if extractor != nil {
		extractionName = extractor.GetProviderName()
	}

	// Receipt image archive
	uploadProvider, err := upload.NewProvider(ctx, upload.ProviderConfig{
		Provider:     cfg.UploadProvider,
		LocalPath:    cfg.UploadPath,
		LocalBaseURL: cfg.UploadBaseURL,
		AWSRegion:    cfg.AWSRegion,
		AWSAccessKey: cfg.AWSAccessKey,
		AWSSecretKey: cfg.AWSSecretKey,
		AWSBucket:    cfg.AWSBucket,
		AWSEndpoint:  cfg.AWSEndpoint,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize upload provider")
	}
	uploadOpts := upload.DefaultOptions()
	uploadOpts.MaxSize = int64(cfg.MaxUploadSizeMB) * 1024 * 1024
	uploadService := upload.NewService(uploadProvider, uploadOpts)

	// Services
	receiptRepo := repositories.NewReceiptRepo(db.GORM)
	expenseRepo := repositories.NewExpenseRepo(db.GORM)
	jobService := jobs.NewService(db.GORM)
	exporter := export.NewService()

	deps := services.ReceiptServiceDeps{
		OCR:             ocrService,
		Extractor:       extractor,
		Archive:         uploadService,
		Jobs:            jobService,
		Receipts:        receiptRepo,
		Expenses:        expenseRepo,
		Exporter:        exporter,
		DefaultCategory: cfg.DefaultCategory,
	}
	rules := receipt.DefaultRules().WithThresholds(cfg.ReceiptTolerance, cfg.ReceiptSuspectRatio, cfg.ReceiptSuspectCeiling)
	receiptService := services.NewReceiptService(rules, deps)
	expenseService := services.NewExpenseService(expenseRepo, analytics.NewAggregator(db.GORM), exporter)

	// Background jobs
	workerCfg := jobs.DefaultWorkerConfig()
	workerCfg.Queue = jobs.ReceiptsQueue
	workerCfg.Concurrency = cfg.JobConcurrency
	jobService.RegisterWorker(workerCfg, services.NewImportJobHandler(receiptService))
	if err := jobService.StartWorkers(ctx); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start job workers")
	}

	// Housekeeping
	sched := scheduler.NewScheduler()
	if ocrCache != nil {
		ttl := time.Duration(cfg.OCRCacheTTLDays) * 24 * time.Hour
		if err := sched.Add(scheduler.Task{
			Name:     "prune-ocr-cache",
			Schedule: cfg.HousekeepingCron,
			Run: func(ctx context.Context) error {
				n, err := ocrCache.Prune(ctx, ttl)
				if err == nil && n > 0 {
					log.Info().Int64("entries", n).Msg("🧹 OCR cache pruned")
				}
				return err
			},
		}); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to schedule OCR cache pruning")
		}
	}
	retention := time.Duration(cfg.JobRetentionDays) * 24 * time.Hour
	if err := sched.Add(scheduler.Task{
		Name:     "cleanup-jobs",
		Schedule: cfg.HousekeepingCron,
		Run: func(ctx context.Context) error {
			_, err := jobService.Cleanup(ctx, retention)
			return err
		},
	}); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to schedule job cleanup")
	}
	sched.Start()

	// HTTP
	app := fiber.New(fiber.Config{
		AppName:   "Household Finance API",
		BodyLimit: (cfg.MaxUploadSizeMB + 1) * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(handlers.RequestLogger())

	app.Get("/swagger/*", swagger.HandlerDefault)
	if cfg.UploadProvider == "local" {
		app.Static("/uploads", cfg.UploadPath)
	}

	handlers.RegisterRoutes(app, handlers.Handlers{
		Health: handlers.NewHealthHandler(handlers.Providers{
			OCR:        ocrService.GetProviderName(),
			Extraction: extractionName,
			Upload:     uploadService.GetProviderName(),
		}),
		Receipts: handlers.NewReceiptHandler(receiptService, cfg.MaxUploadSizeMB),
		Expenses: handlers.NewExpenseHandler(expenseService),
		Jobs:     handlers.NewJobHandler(jobService),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("🚀 API running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("❌ Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ HTTP shutdown failed")
	}
	sched.Stop()
	jobService.StopWorkers()
	log.Info().Msg("👋 Bye")
}
