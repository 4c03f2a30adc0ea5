package upload

import (
	"context"
	"fmt"
)

// ProviderConfig selects and configures a storage provider.
type ProviderConfig struct {
	Provider string // local, s3, none

	LocalPath    string
	LocalBaseURL string

	AWSRegion    string
	AWSAccessKey string
	AWSSecretKey string
	AWSBucket    string
	AWSEndpoint  string
}

// NewProvider returns nil without error when archiving is disabled.
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "local":
		return NewLocalProvider(cfg.LocalPath, cfg.LocalBaseURL)
	case "s3":
		return NewS3Provider(ctx, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSRegion, cfg.AWSBucket, cfg.AWSEndpoint)
	default:
		return nil, fmt.Errorf("unknown upload provider: %s", cfg.Provider)
	}
}
