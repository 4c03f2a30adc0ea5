package services

import "errors"

var (
	ErrNoImage           = errors.New("image is required")
	ErrInvalidSource     = errors.New("source must be ocr, extraction or auto")
	ErrNoCapability      = errors.New("no OCR or extraction provider configured")
	ErrAsyncUnavailable  = errors.New("asynchronous import needs an upload provider and the job queue")
	ErrInvalidSaveMode   = errors.New("mode must be aggregate or per_item")
	ErrNothingToSave     = errors.New("receipt has no amount to save")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidMonth      = errors.New("invalid year or month")
	ErrReceiptRequired   = errors.New("receipt is required")
	ErrInvalidJobPayload = errors.New("invalid receipt import job payload")
	ErrRecognitionFailed = errors.New("receipt recognition failed")
)
