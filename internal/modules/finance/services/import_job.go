package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/jobs"
)

// ImportJobHandler runs queued receipt imports. The parse result becomes
// the job result.
type ImportJobHandler struct {
	receipts *ReceiptService
}

func NewImportJobHandler(receipts *ReceiptService) *ImportJobHandler {
	return &ImportJobHandler{receipts: receipts}
}

func (h *ImportJobHandler) GetType() string {
	return jobs.TypeReceiptImport
}

func (h *ImportJobHandler) Handle(ctx context.Context, job *jobs.Job) (any, error) {
	var payload ImportJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil || payload.ImageKey == "" {
		return nil, fmt.Errorf("%w: job %s", ErrInvalidJobPayload, job.ID)
	}
	if !h.receipts.archiveEnabled() {
		return nil, ErrAsyncUnavailable
	}

	image, err := h.receipts.deps.Archive.Fetch(ctx, payload.ImageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch archived image: %w", err)
	}

	result, err := h.receipts.ImportImage(ctx, ImportRequest{
		Image:       image,
		ContentType: payload.ContentType,
		Source:      payload.Source,
		ImageKey:    payload.ImageKey,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
