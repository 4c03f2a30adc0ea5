package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TesseractProvider runs the local tesseract binary.
type TesseractProvider struct {
	tesseractPath string
	language      string
}

// NewTesseractProvider uses the "por" traineddata unless language is set.
// Languages can be combined, e.g. "por+eng".
func NewTesseractProvider(language string) *TesseractProvider {
	if language == "" {
		language = "por"
	}
	return &TesseractProvider{
		tesseractPath: "tesseract",
		language:      language,
	}
}

func (p *TesseractProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	img, err := os.CreateTemp("", "receipt-*.img")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp image: %w", err)
	}
	defer os.Remove(img.Name())

	if _, err := img.Write(imageData); err != nil {
		img.Close()
		return nil, fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := img.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp image: %w", err)
	}

	// "stdout" as output base prints the text instead of writing a file.
	// psm 6 reads the coupon as one uniform block, keeping item lines intact.
	cmd := exec.CommandContext(ctx, p.tesseractPath, img.Name(), "stdout", "-l", p.language, "--psm", "6")
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("tesseract command failed: %w, output: %s", err, stderr.String())
	}

	return &Result{
		Text:       strings.TrimSpace(string(out)),
		Confidence: 0.90,
		Provider:   p.GetProviderName(),
	}, nil
}

func (p *TesseractProvider) GetProviderName() string {
	return "Tesseract OCR"
}
