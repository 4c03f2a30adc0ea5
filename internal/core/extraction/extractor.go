// Package extraction obtains pre-segmented receipt data (store, date, total
// and line items) from services that read the image themselves.
package extraction

import (
	"context"
	"errors"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
)

// ErrInvalidPayload is returned when a service answer cannot be read as a
// receipt summary.
var ErrInvalidPayload = errors.New("invalid extraction payload")

// Extractor is a structured receipt extraction capability.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) (*receipt.StructuredSummary, error)
	GetProviderName() string
}
