package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL string
	Port        string
	Env         string
	LogLevel    string

	// OCR
	OCRProvider        string // google, ocrspace, tesseract
	GoogleVisionAPIKey string
	OCRSpaceAPIKey     string
	TesseractLanguage  string
	OCRCachePath       string
	OCRCacheTTLDays    int

	// Structured extraction
	ExtractionProvider string // veryfi, gemini, llm, none
	VeryfiClientID     string
	VeryfiUsername     string
	VeryfiAPIKey       string
	VeryfiBaseURL      string
	GeminiAPIKey       string
	GeminiModel        string
	LLMProvider        string
	OpenAIKey          string
	LLMModel           string

	// Receipt image archive
	UploadProvider  string // local, s3, none
	UploadPath      string
	UploadBaseURL   string
	AWSRegion       string
	AWSAccessKey    string
	AWSSecretKey    string
	AWSBucket       string
	AWSEndpoint     string
	MaxUploadSizeMB int

	// Reconciliation thresholds
	ReceiptTolerance      float64
	ReceiptSuspectRatio   float64
	ReceiptSuspectCeiling float64

	// Background work
	JobConcurrency   int
	HousekeepingCron string
	JobRetentionDays int
	DefaultCategory  string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		OCRProvider:        strings.ToLower(getEnv("OCR_PROVIDER", "tesseract")),
		GoogleVisionAPIKey: os.Getenv("GOOGLE_VISION_API_KEY"),
		OCRSpaceAPIKey:     os.Getenv("OCR_SPACE_API_KEY"),
		TesseractLanguage:  getEnv("TESSERACT_LANGUAGE", "por"),
		OCRCachePath:       os.Getenv("OCR_CACHE_PATH"),
		OCRCacheTTLDays:    getEnvInt("OCR_CACHE_TTL_DAYS", 30),

		ExtractionProvider: strings.ToLower(getEnv("EXTRACTION_PROVIDER", "none")),
		VeryfiClientID:     os.Getenv("VERYFI_CLIENT_ID"),
		VeryfiUsername:     os.Getenv("VERYFI_USERNAME"),
		VeryfiAPIKey:       os.Getenv("VERYFI_API_KEY"),
		VeryfiBaseURL:      getEnv("VERYFI_BASE_URL", "https://api.veryfi.com/api/v8/partner"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMProvider:        strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		OpenAIKey:          os.Getenv("OPENAI_API_KEY"),
		LLMModel:           os.Getenv("LLM_MODEL"),

		UploadProvider:  strings.ToLower(getEnv("UPLOAD_PROVIDER", "none")),
		UploadPath:      getEnv("UPLOAD_PATH", "./uploads"),
		UploadBaseURL:   getEnv("UPLOAD_BASE_URL", "http://localhost:8080/uploads"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSBucket:       os.Getenv("AWS_S3_BUCKET"),
		AWSEndpoint:     os.Getenv("AWS_S3_ENDPOINT"),
		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 10),

		ReceiptTolerance:      getEnvFloat("RECEIPT_TOLERANCE", 0.05),
		ReceiptSuspectRatio:   getEnvFloat("RECEIPT_SUSPECT_RATIO", 1.2),
		ReceiptSuspectCeiling: getEnvFloat("RECEIPT_SUSPECT_CEILING", 500),

		JobConcurrency:   getEnvInt("JOB_CONCURRENCY", 2),
		HousekeepingCron: getEnv("HOUSEKEEPING_SCHEDULE", "0 0 3 * * *"),
		JobRetentionDays: getEnvInt("JOB_RETENTION_DAYS", 14),
		DefaultCategory:  getEnv("DEFAULT_EXPENSE_CATEGORY", "Outros"),
	}

	return cfg
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("⚠️ invalid integer, using default")
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("⚠️ invalid number, using default")
		return fallback
	}
	return f
}
