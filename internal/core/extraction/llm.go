package extraction

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
)

// TextExtractor runs OCR first and lets a chat model segment the text into
// items. The OCR text is kept on the summary for re-parsing.
type TextExtractor struct {
	ocr *ocr.Service
	llm *llm.Service
}

func NewTextExtractor(ocrService *ocr.Service, llmService *llm.Service) *TextExtractor {
	return &TextExtractor{ocr: ocrService, llm: llmService}
}

func (e *TextExtractor) GetProviderName() string {
	return e.llm.GetProviderName() + " over " + e.ocr.GetProviderName()
}

func (e *TextExtractor) Extract(ctx context.Context, image []byte, mimeType string) (*receipt.StructuredSummary, error) {
	res, err := e.ocr.ExtractText(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("ocr failed: %w", err)
	}
	return e.ExtractFromText(ctx, res.Text)
}

// ExtractFromText asks the model to segment already recognized text.
func (e *TextExtractor) ExtractFromText(ctx context.Context, text string) (*receipt.StructuredSummary, error) {
	log.Info().Str("provider", e.llm.GetProviderName()).Msg("🤖 Segmenting receipt text with LLM")

	answer, err := e.llm.GenerateResponse(ctx, summaryPrompt, "Receipt OCR text:\n\n"+text)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	summary, err := ParsePayload([]byte(answer))
	if err != nil {
		return nil, err
	}
	summary.RawText = text
	return summary, nil
}
