package services

import (
	"context"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/jobs"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/upload"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks -source=interfaces.go
//go:generate mockgen -destination=mocks/mock_extractor.go -package=mocks github.com/MuhamadAgungGumelar/household-finance-be/internal/core/extraction Extractor

// TextRecognizer is the OCR capability (*ocr.Service).
type TextRecognizer interface {
	ExtractText(ctx context.Context, imageData []byte) (*ocr.Result, error)
	GetProviderName() string
}

// ImageArchive stores receipt images (*upload.Service).
type ImageArchive interface {
	Enabled() bool
	Archive(ctx context.Context, data []byte, contentType string) (*upload.Object, error)
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// JobEnqueuer queues asynchronous imports (*jobs.Service).
type JobEnqueuer interface {
	EnqueueReceiptImport(ctx context.Context, payload any) (*jobs.Job, error)
}

// SpendingAggregator summarizes expenses (*analytics.Aggregator).
type SpendingAggregator interface {
	Summarize(ctx context.Context, period string, r *analytics.DateRange) (*analytics.Summary, error)
}
