package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/extraction"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/jobs"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/models"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/repositories"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/utils"
)

const (
	SourceAuto       = "auto"
	SourceOCR        = "ocr"
	SourceExtraction = "extraction"

	SaveModeAggregate = "aggregate"
	SaveModePerItem   = "per_item"

	fallbackCategory = "Outros"
	fallbackStore    = "loja"
	defaultListLimit = 50
	maxListLimit     = 200
)

// ReceiptServiceDeps wires the optional capabilities of the receipt
// service. Nil OCR, Extractor, Archive or Jobs disable the features that
// need them.
type ReceiptServiceDeps struct {
	OCR             TextRecognizer
	Extractor       extraction.Extractor
	Archive         ImageArchive
	Jobs            JobEnqueuer
	Receipts        repositories.ReceiptRepo
	Expenses        repositories.ExpenseRepo
	Exporter        *export.Service
	DefaultCategory string
}

// ReceiptService imports receipts from images or text and turns them into
// expenses.
type ReceiptService struct {
	parser     *receipt.Parser
	normalizer *receipt.Normalizer
	deps       ReceiptServiceDeps
	now        func() time.Time
}

func NewReceiptService(rules receipt.Rules, deps ReceiptServiceDeps) *ReceiptService {
	if deps.DefaultCategory == "" {
		deps.DefaultCategory = fallbackCategory
	}
	if deps.Exporter == nil {
		deps.Exporter = export.NewService()
	}
	return &ReceiptService{
		parser:     receipt.NewParser(rules),
		normalizer: receipt.NewNormalizer(rules),
		deps:       deps,
		now:        time.Now,
	}
}

// ImportRequest is one receipt image to import. ImageKey is set when the
// image was already archived.
type ImportRequest struct {
	Image       []byte
	ContentType string
	Source      string
	ImageKey    string
	ImageURL    string
}

// ImportResult is a parsed receipt that has not been saved yet.
type ImportResult struct {
	Receipt  *receipt.Receipt `json:"receipt"`
	Provider string           `json:"provider"`
	ImageKey string           `json:"image_key,omitempty"`
	ImageURL string           `json:"image_url,omitempty"`
}

// ParseText runs the text parser on raw OCR output.
func (s *ReceiptService) ParseText(raw string) *receipt.Receipt {
	return s.parser.Parse(raw)
}

// Normalize reconciles a structured extraction payload.
func (s *ReceiptService) Normalize(summary receipt.StructuredSummary) *receipt.Receipt {
	return s.normalizer.Normalize(summary)
}

func normalizeSource(source string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", SourceAuto:
		return SourceAuto, nil
	case SourceOCR:
		return SourceOCR, nil
	case SourceExtraction:
		return SourceExtraction, nil
	}
	return "", ErrInvalidSource
}

// ImportImage recognizes a receipt image and returns the parse result.
// With source auto the structured extractor is tried first and OCR is the
// fallback.
func (s *ReceiptService) ImportImage(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if len(req.Image) == 0 {
		return nil, ErrNoImage
	}
	source, err := normalizeSource(req.Source)
	if err != nil {
		return nil, err
	}
	logger := utils.FromContext(ctx)

	result := &ImportResult{ImageKey: req.ImageKey, ImageURL: req.ImageURL}
	if result.ImageKey == "" && s.archiveEnabled() {
		obj, err := s.deps.Archive.Archive(ctx, req.Image, req.ContentType)
		if err != nil {
			logger.Warn().Err(err).Msg("⚠️ Failed to archive receipt image, continuing without it")
		} else {
			result.ImageKey, result.ImageURL = obj.Key, obj.URL
		}
	}

	r, provider, err := s.recognize(ctx, req.Image, req.ContentType, source)
	if err != nil {
		return nil, err
	}
	result.Receipt, result.Provider = r, provider

	logger.Info().
		Str("provider", provider).
		Str("store", r.StoreName).
		Int("items", len(r.Items)).
		Int("warnings", len(r.Warnings)).
		Msg("🧾 Receipt imported")
	return result, nil
}

func (s *ReceiptService) recognize(ctx context.Context, image []byte, contentType, source string) (*receipt.Receipt, string, error) {
	logger := utils.FromContext(ctx)

	useExtraction := source == SourceExtraction || (source == SourceAuto && s.deps.Extractor != nil)
	if useExtraction {
		if s.deps.Extractor == nil {
			return nil, "", fmt.Errorf("%w: extraction requested", ErrNoCapability)
		}
		summary, err := s.deps.Extractor.Extract(ctx, image, contentType)
		if err == nil {
			return s.normalizer.Normalize(*summary), s.deps.Extractor.GetProviderName(), nil
		}
		if source == SourceExtraction || s.deps.OCR == nil {
			return nil, "", fmt.Errorf("%w: extraction: %w", ErrRecognitionFailed, err)
		}
		logger.Warn().Err(err).Str("provider", s.deps.Extractor.GetProviderName()).Msg("⚠️ Extraction failed, falling back to OCR")
	}

	if s.deps.OCR == nil {
		return nil, "", ErrNoCapability
	}
	res, err := s.deps.OCR.ExtractText(ctx, image)
	if err != nil {
		return nil, "", fmt.Errorf("%w: ocr: %w", ErrRecognitionFailed, err)
	}
	logger.Debug().Bool("cached", res.Cached).Float64("confidence", res.Confidence).Msg("🔍 OCR text extracted")
	return s.parser.Parse(res.Text), s.deps.OCR.GetProviderName(), nil
}

func (s *ReceiptService) archiveEnabled() bool {
	return s.deps.Archive != nil && s.deps.Archive.Enabled()
}

// ImportJobPayload is stored on receipt_import jobs.
type ImportJobPayload struct {
	ImageKey    string `json:"image_key"`
	ImageURL    string `json:"image_url"`
	ContentType string `json:"content_type"`
	Source      string `json:"source"`
}

// ImportAsync archives the image and queues its import.
func (s *ReceiptService) ImportAsync(ctx context.Context, req ImportRequest) (*jobs.Job, error) {
	if len(req.Image) == 0 {
		return nil, ErrNoImage
	}
	source, err := normalizeSource(req.Source)
	if err != nil {
		return nil, err
	}
	if !s.archiveEnabled() || s.deps.Jobs == nil {
		return nil, ErrAsyncUnavailable
	}

	obj, err := s.deps.Archive.Archive(ctx, req.Image, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to archive image: %w", err)
	}
	job, err := s.deps.Jobs.EnqueueReceiptImport(ctx, ImportJobPayload{
		ImageKey:    obj.Key,
		ImageURL:    obj.URL,
		ContentType: req.ContentType,
		Source:      source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue import: %w", err)
	}

	utils.FromContext(ctx).Info().Str("job_id", job.ID.String()).Str("image_key", obj.Key).Msg("📥 Receipt import queued")
	return job, nil
}

// SaveRequest turns a reviewed parse result into stored expenses.
type SaveRequest struct {
	Receipt         *receipt.Receipt  `json:"receipt"`
	Mode            string            `json:"mode"`
	DefaultCategory string            `json:"default_category"`
	ItemCategories  map[string]string `json:"item_categories"`
	PaymentMethod   string            `json:"payment_method"`
	ImageKey        string            `json:"image_key"`
	ImageURL        string            `json:"image_url"`
}

type SaveResult struct {
	Receipt  *models.Receipt  `json:"receipt"`
	Expenses []models.Expense `json:"expenses"`
}

// Save stores the receipt and creates expenses. Aggregate mode books one
// expense for the whole receipt; per_item books one per item.
func (s *ReceiptService) Save(ctx context.Context, req SaveRequest) (*SaveResult, error) {
	if req.Receipt == nil {
		return nil, ErrReceiptRequired
	}
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = SaveModeAggregate
	}
	if mode != SaveModeAggregate && mode != SaveModePerItem {
		return nil, ErrInvalidSaveMode
	}
	// Items may have been edited since parsing.
	req.Receipt.SumItems()

	m, err := models.NewReceipt(req.Receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode receipt: %w", err)
	}
	m.ImageKey, m.ImageURL = req.ImageKey, req.ImageURL
	for i := range m.Items {
		m.Items[i].ID = uuid.New()
	}

	date := s.expenseDate(req.Receipt)
	defaultCategory := firstNonEmpty(req.DefaultCategory, s.deps.DefaultCategory, fallbackCategory)

	var expenses []models.Expense
	if mode == SaveModeAggregate {
		total := req.Receipt.Total()
		if !total.IsPositive() {
			return nil, ErrNothingToSave
		}
		expenses = append(expenses, models.Expense{
			Description:   fmt.Sprintf("Compra em %s", firstNonEmpty(req.Receipt.StoreName, fallbackStore)),
			Amount:        total,
			Category:      defaultCategory,
			PaymentMethod: req.PaymentMethod,
			Status:        models.ExpenseStatusPaid,
			ExpenseDate:   date,
		})
	} else {
		for i, it := range req.Receipt.Items {
			if !it.Value.IsPositive() {
				continue
			}
			itemID := m.Items[i].ID
			expenses = append(expenses, models.Expense{
				Description:   it.Description,
				Amount:        it.Value,
				Category:      firstNonEmpty(req.ItemCategories[it.ID], it.SuggestedCategory, defaultCategory),
				PaymentMethod: req.PaymentMethod,
				Status:        models.ExpenseStatusPaid,
				ExpenseDate:   date,
				ReceiptItemID: &itemID,
			})
		}
		if len(expenses) == 0 {
			return nil, ErrNothingToSave
		}
	}

	if err := s.deps.Receipts.CreateWithExpenses(ctx, m, expenses); err != nil {
		return nil, fmt.Errorf("failed to save receipt: %w", err)
	}

	utils.FromContext(ctx).Info().
		Str("receipt_id", m.ID.String()).
		Str("mode", mode).
		Int("expenses", len(expenses)).
		Msg("💾 Receipt saved")
	return &SaveResult{Receipt: m, Expenses: expenses}, nil
}

// expenseDate is the receipt date, or today when the receipt has none.
func (s *ReceiptService) expenseDate(r *receipt.Receipt) time.Time {
	if r.HasDate() {
		if d, err := time.Parse("2006-01-02", r.Date); err == nil {
			return d
		}
	}
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ReceiptDetail is a stored receipt with the expenses booked from it.
type ReceiptDetail struct {
	Receipt  *models.Receipt  `json:"receipt"`
	Expenses []models.Expense `json:"expenses"`
}

func (s *ReceiptService) Get(ctx context.Context, id uuid.UUID) (*ReceiptDetail, error) {
	m, err := s.deps.Receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ReceiptDetail{Receipt: m, Expenses: []models.Expense{}}
	if s.deps.Expenses != nil {
		expenses, err := s.deps.Expenses.ListByReceipt(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}
		detail.Expenses = expenses
	}
	return detail, nil
}

func (s *ReceiptService) List(ctx context.Context, limit int) ([]models.Receipt, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.deps.Receipts.List(ctx, limit)
}

// Export renders a stored receipt.
func (s *ReceiptService) Export(ctx context.Context, id uuid.UUID, format export.Format) (*export.File, error) {
	m, err := s.deps.Receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.deps.Exporter.Export(export.ReceiptDocument(m.ToParsed()), format, "receipt-"+id.String()[:8])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
