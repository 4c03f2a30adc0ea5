package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OCR_PROVIDER", "")
	t.Setenv("RECEIPT_TOLERANCE", "")
	t.Setenv("JOB_CONCURRENCY", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "tesseract", cfg.OCRProvider)
	assert.Equal(t, "por", cfg.TesseractLanguage)
	assert.InDelta(t, 0.05, cfg.ReceiptTolerance, 1e-9)
	assert.InDelta(t, 1.2, cfg.ReceiptSuspectRatio, 1e-9)
	assert.Equal(t, 2, cfg.JobConcurrency)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("OCR_PROVIDER", "GOOGLE")
	t.Setenv("RECEIPT_SUSPECT_CEILING", "1500")
	t.Setenv("JOB_CONCURRENCY", "not-a-number")
	t.Setenv("ENV", "production")

	cfg := LoadConfig()

	assert.Equal(t, "google", cfg.OCRProvider)
	assert.InDelta(t, 1500, cfg.ReceiptSuspectCeiling, 1e-9)
	assert.Equal(t, 2, cfg.JobConcurrency)
	assert.True(t, cfg.IsProduction())
}
