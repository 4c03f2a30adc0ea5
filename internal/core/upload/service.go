package upload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validates and stores receipt images through a provider. A nil
// provider disables archiving.
type Service struct {
	provider Provider
	opts     Options
	now      func() time.Time
}

func NewService(provider Provider, opts Options) *Service {
	def := DefaultOptions()
	if opts.Folder == "" {
		opts.Folder = def.Folder
	}
	if len(opts.AllowedTypes) == 0 {
		opts.AllowedTypes = def.AllowedTypes
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = def.MaxSize
	}
	return &Service{provider: provider, opts: opts, now: time.Now}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Validate checks size and content type without storing anything.
func (s *Service) Validate(size int64, contentType string) error {
	if size > s.opts.MaxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, size, s.opts.MaxSize)
	}
	for _, t := range s.opts.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrTypeNotAllowed, contentType)
}

// Archive stores an image under <folder>/<yyyy>/<mm>/<uuid><ext>.
func (s *Service) Archive(ctx context.Context, data []byte, contentType string) (*Object, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	if err := s.Validate(int64(len(data)), contentType); err != nil {
		return nil, err
	}
	now := s.now()
	key := fmt.Sprintf("%s/%04d/%02d/%s%s", s.opts.Folder, now.Year(), int(now.Month()), uuid.NewString(), extensionFor(contentType))
	return s.provider.Put(ctx, key, data, contentType)
}

func (s *Service) Fetch(ctx context.Context, key string) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	return s.provider.Get(ctx, key)
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	return s.provider.Delete(ctx, key)
}

func (s *Service) GetURL(key string) string {
	if !s.Enabled() {
		return ""
	}
	return s.provider.GetURL(key)
}

func (s *Service) GetProviderName() string {
	if !s.Enabled() {
		return "none"
	}
	return s.provider.GetProviderName()
}
