package export

import (
	"bytes"
	"fmt"
)

// Service dispatches documents to the exporter for a format.
type Service struct {
	exporters map[Format]Exporter
}

func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatPDF:   NewPDFExporter(),
			FormatExcel: NewExcelExporter(),
		},
	}
}

// File is a rendered export ready to be sent to a client.
type File struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Export renders doc and names the result base plus the format's extension.
func (s *Service) Export(doc *Document, format Format, base string) (*File, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if len(doc.Tables) == 0 {
		return nil, fmt.Errorf("document has no tables")
	}

	var buf bytes.Buffer
	if err := exporter.Export(doc, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", format, err)
	}

	return &File{
		Data:        buf.Bytes(),
		ContentType: exporter.GetContentType(),
		Filename:    base + exporter.GetFileExtension(),
	}, nil
}
