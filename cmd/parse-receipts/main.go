package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/batch"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/utils"
)

func main() {
	var dir, out string
	var useOCR bool
	var workers int

	flag.StringVar(&dir, "dir", ".", "Directory with receipt .txt files (and images with -ocr)")
	flag.StringVar(&out, "out", "receipts_report.xlsx", "Report file (.xlsx or .pdf)")
	flag.BoolVar(&useOCR, "ocr", false, "Also OCR .jpg/.png/.webp images with the configured provider")
	flag.IntVar(&workers, "workers", 4, "Files processed in parallel")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var recognizer batch.TextRecognizer
	if useOCR {
		provider, err := ocr.NewProvider(ocr.Options{
			Provider:          cfg.OCRProvider,
			GoogleVisionKey:   cfg.GoogleVisionAPIKey,
			OCRSpaceKey:       cfg.OCRSpaceAPIKey,
			TesseractLanguage: cfg.TesseractLanguage,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to initialize OCR provider")
		}
		if cfg.OCRCachePath != "" {
			cached, err := ocr.NewCachedProvider(provider, cfg.OCRCachePath)
			if err != nil {
				log.Fatal().Err(err).Msg("❌ Failed to open OCR cache")
			}
			defer cached.Close()
			provider = cached
		}
		recognizer = ocr.NewService(provider)
	}

	files, err := batch.FindFiles(dir, useOCR)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to scan directory")
	}
	if len(files) == 0 {
		fmt.Println("No receipt files found in", dir)
		return
	}
	fmt.Printf("Found %d files to process. Starting analysis...\n", len(files))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Parsing receipts"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	rules := receipt.DefaultRules().WithThresholds(cfg.ReceiptTolerance, cfg.ReceiptSuspectRatio, cfg.ReceiptSuspectCeiling)
	results := batch.NewProcessor(rules, recognizer, workers).Run(ctx, files, func() {
		_ = bar.Add(1)
	})
	_ = bar.Finish()

	format := export.FormatExcel
	if strings.EqualFold(filepath.Ext(out), ".pdf") {
		format = export.FormatPDF
	}
	file, err := export.NewService().Export(batch.ReportDocument(results), format, "receipts_report")
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to build report")
	}
	if err := os.WriteFile(out, file.Data, 0o644); err != nil {
		log.Fatal().Err(err).Str("out", out).Msg("❌ Failed to write report")
	}

	c := batch.Count(results)
	fmt.Printf("\nGenerated report '%s' with:\n", out)
	fmt.Printf("- %d parsed receipts (%d need review)\n", c.Parsed, c.WithWarnings)
	fmt.Printf("- %d files with errors\n", c.Failed)
}
