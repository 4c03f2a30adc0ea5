// Package export renders receipts and expense listings as Excel or PDF
// documents.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// ParseFormat accepts the query-string spellings used by the API. Empty
// defaults to Excel.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "excel", "xlsx":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Exporter writes a document in one file format.
type Exporter interface {
	Export(doc *Document, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Document is a titled set of tables. Excel writes one worksheet per
// table; PDF writes them one after another.
type Document struct {
	Title       string
	Description string
	CreatedAt   time.Time
	Tables      []Table
	Style       Style
}

// Table is one block of tabular data. Cells may hold strings, numbers,
// bools or decimal.Decimal values; Footer is rendered bold below the rows.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
	Footer  []any
}

type Style struct {
	Orientation   string // portrait or landscape
	PageSize      string
	HeaderBgColor string
	AlternateRows bool
	RowBgColor1   string
	RowBgColor2   string
	FontFamily    string
	FontSize      float64
	FreezeHeader  bool
	AutoFilter    bool
	ColumnWidths  map[int]float64
}

func DefaultStyle() Style {
	return Style{
		Orientation:   "portrait",
		PageSize:      "A4",
		HeaderBgColor: "#2E7D32",
		AlternateRows: true,
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F1F8E9",
		FontFamily:    "Arial",
		FontSize:      9,
		FreezeHeader:  true,
		AutoFilter:    true,
		ColumnWidths:  map[int]float64{},
	}
}

// NewDocument returns a document with the default style.
func NewDocument(title string, tables ...Table) *Document {
	return &Document{
		Title:     title,
		CreatedAt: time.Now(),
		Tables:    tables,
		Style:     DefaultStyle(),
	}
}
