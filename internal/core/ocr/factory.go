package ocr

import "fmt"

// Options selects and configures an OCR provider.
type Options struct {
	Provider          string // google, ocrspace, tesseract
	GoogleVisionKey   string
	OCRSpaceKey       string
	TesseractLanguage string
}

func NewProvider(opts Options) (Provider, error) {
	switch opts.Provider {
	case "google":
		if opts.GoogleVisionKey == "" {
			return nil, fmt.Errorf("GOOGLE_VISION_API_KEY is required for google OCR")
		}
		return NewGoogleVisionProvider(opts.GoogleVisionKey), nil
	case "ocrspace":
		if opts.OCRSpaceKey == "" {
			return nil, fmt.Errorf("OCR_SPACE_API_KEY is required for ocrspace OCR")
		}
		return NewOCRSpaceProvider(opts.OCRSpaceKey), nil
	case "tesseract", "":
		return NewTesseractProvider(opts.TesseractLanguage), nil
	default:
		return nil, fmt.Errorf("unknown OCR provider: %s", opts.Provider)
	}
}
