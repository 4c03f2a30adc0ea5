// Package ocr turns receipt images into raw text through an external OCR
// engine.
package ocr

import (
	"context"
	"errors"
)

// ErrEmptyImage is returned when no image bytes are given.
var ErrEmptyImage = errors.New("empty image")

// Provider is an OCR engine.
type Provider interface {
	// ExtractText returns the raw text recognized in imageData.
	ExtractText(ctx context.Context, imageData []byte) (*Result, error)

	GetProviderName() string
}

// Result is the raw text recognized in one image.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0-1, provider default when not reported
	Provider   string  `json:"provider"`
	Cached     bool    `json:"cached"`
}

// Service wraps the configured provider.
type Service struct {
	provider Provider
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// ExtractText rejects empty input before calling the provider.
func (s *Service) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}
	res, err := s.provider.ExtractText(ctx, imageData)
	if err != nil {
		return nil, err
	}
	if res.Provider == "" {
		res.Provider = s.provider.GetProviderName()
	}
	return res, nil
}

func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
