package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// PDFExporter renders tables with gofpdf core fonts. Text is translated
// to cp1252 so Portuguese accents survive.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

func (p *PDFExporter) Export(doc *Document, writer io.Writer) error {
	style := doc.Style
	orientation := "P"
	if style.Orientation == "landscape" {
		orientation = "L"
	}
	pageSize := style.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	fontSize := style.FontSize
	if fontSize <= 0 {
		fontSize = 9
	}
	// gofpdf ships only the core fonts
	const family = "Arial"

	pdf := gofpdf.New(orientation, "mm", pageSize, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont(family, "B", 16)
		pdf.Cell(0, 10, tr(doc.Title))
		pdf.Ln(12)
	}
	if doc.Description != "" {
		pdf.SetFont(family, "", fontSize)
		pdf.MultiCell(0, 5, tr(doc.Description), "", "", false)
		pdf.Ln(4)
	}
	if !doc.CreatedAt.IsZero() {
		pdf.SetFont(family, "I", 8)
		pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", doc.CreatedAt.Format("2006-01-02 15:04:05")))
		pdf.Ln(8)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	usable := pageWidth - left - right

	for _, table := range doc.Tables {
		if len(table.Headers) == 0 {
			return fmt.Errorf("table %q has no headers", table.Name)
		}
		colWidth := usable / float64(len(table.Headers))

		drawHeader := func() {
			pdf.SetFont(family, "B", fontSize)
			fill := style.HeaderBgColor != ""
			if fill {
				r, g, b := hexToRGB(style.HeaderBgColor)
				pdf.SetFillColor(r, g, b)
				pdf.SetTextColor(255, 255, 255)
			}
			for _, h := range table.Headers {
				pdf.CellFormat(colWidth, 7, tr(h), "1", 0, "C", fill, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont(family, "", fontSize)
		}

		if table.Name != "" {
			pdf.SetFont(family, "B", fontSize+2)
			pdf.Cell(0, 8, tr(table.Name))
			pdf.Ln(9)
		}
		drawHeader()

		for i, row := range table.Rows {
			if style.AlternateRows {
				color := style.RowBgColor1
				if i%2 == 1 {
					color = style.RowBgColor2
				}
				r, g, b := hexToRGB(color)
				pdf.SetFillColor(r, g, b)
			}
			for _, value := range row {
				text, align := formatCell(value)
				pdf.CellFormat(colWidth, 6, tr(text), "1", 0, align, style.AlternateRows, 0, "")
			}
			pdf.Ln(-1)

			if pdf.GetY() > pageHeight-bottom-10 {
				pdf.AddPage()
				drawHeader()
			}
		}

		if len(table.Footer) > 0 {
			pdf.SetFont(family, "B", fontSize)
			for _, value := range table.Footer {
				text, align := formatCell(value)
				pdf.CellFormat(colWidth, 6, tr(text), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont(family, "", fontSize)
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

// formatCell renders a cell value and picks its alignment. Money is right
// aligned with two decimals.
func formatCell(value any) (string, string) {
	switch v := value.(type) {
	case nil:
		return "", "L"
	case decimal.Decimal:
		return v.StringFixed(2), "R"
	case int, int64, float64:
		return fmt.Sprintf("%v", v), "R"
	case bool:
		if v {
			return "yes", "C"
		}
		return "", "C"
	default:
		return fmt.Sprintf("%v", v), "L"
	}
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 255, 255, 255
	}
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
