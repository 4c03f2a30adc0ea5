package extraction

import (
	"context"
	"fmt"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
)

// Options selects and configures an extractor.
type Options struct {
	Provider string // veryfi, gemini, llm, none

	VeryfiBaseURL  string
	VeryfiClientID string
	VeryfiUsername string
	VeryfiAPIKey   string

	GeminiAPIKey string
	GeminiModel  string

	// Used by the llm provider.
	OCR *ocr.Service
	LLM *llm.Service
}

// NewExtractor returns nil without error when extraction is disabled.
func NewExtractor(ctx context.Context, opts Options) (Extractor, error) {
	switch opts.Provider {
	case "", "none":
		return nil, nil
	case "veryfi":
		if opts.VeryfiClientID == "" || opts.VeryfiUsername == "" || opts.VeryfiAPIKey == "" {
			return nil, fmt.Errorf("VERYFI_CLIENT_ID, VERYFI_USERNAME and VERYFI_API_KEY are required")
		}
		return NewVeryfiExtractor(opts.VeryfiBaseURL, opts.VeryfiClientID, opts.VeryfiUsername, opts.VeryfiAPIKey), nil
	case "gemini":
		return NewGeminiExtractor(ctx, opts.GeminiAPIKey, opts.GeminiModel)
	case "llm":
		if opts.OCR == nil || opts.LLM == nil {
			return nil, fmt.Errorf("llm extraction needs both an OCR and an LLM service")
		}
		return NewTextExtractor(opts.OCR, opts.LLM), nil
	default:
		return nil, fmt.Errorf("unknown extraction provider: %s", opts.Provider)
	}
}
