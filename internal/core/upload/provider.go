// Package upload archives receipt images so imports can be re-run and
// processed asynchronously.
package upload

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrTypeNotAllowed = errors.New("file type not allowed")
	ErrObjectNotFound = errors.New("object not found")
	ErrNotConfigured  = errors.New("upload provider not configured")
)

// Object describes a stored file.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Provider is a blob store for receipt images.
type Provider interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	GetURL(key string) string
	GetProviderName() string
}

// Options limits what the service accepts.
type Options struct {
	Folder       string
	AllowedTypes []string
	MaxSize      int64
}

func DefaultOptions() Options {
	return Options{
		Folder:       "receipts",
		AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "application/pdf"},
		MaxSize:      10 * 1024 * 1024,
	}
}

// extensionFor maps an allowed content type to a file extension.
func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ".jpg"
	}
}
