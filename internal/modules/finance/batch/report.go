package batch

import (
	"path/filepath"
	"strings"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
)

// Counts summarizes a batch run.
type Counts struct {
	Parsed       int
	Failed       int
	WithWarnings int
}

func Count(results []Result) Counts {
	var c Counts
	for _, r := range results {
		switch {
		case r.Err != nil:
			c.Failed++
		case len(r.Receipt.Warnings) > 0:
			c.Parsed++
			c.WithWarnings++
		default:
			c.Parsed++
		}
	}
	return c
}

// ReportDocument lays out a batch run as an items sheet and a receipts
// sheet with per-file totals and warnings.
func ReportDocument(results []Result) *export.Document {
	items := export.Table{
		Name:    "Items",
		Headers: []string{"File", "#", "Description", "Qty", "Unit price", "Total", "Category", "Suspect"},
	}
	receipts := export.Table{
		Name:    "Receipts",
		Headers: []string{"File", "Status", "Store", "Date", "Items", "Items total", "Receipt total", "Warnings"},
	}

	for _, res := range results {
		name := filepath.Base(res.File)
		if res.Err != nil {
			receipts.Rows = append(receipts.Rows, []any{name, "error", "", "", 0, "", "", res.Err.Error()})
			continue
		}
		r := res.Receipt
		for i, it := range r.Items {
			items.Rows = append(items.Rows, []any{
				name, i + 1, it.Description, it.Quantity.String(), it.UnitPrice, it.Value, it.SuggestedCategory, it.Suspect,
			})
		}
		var printed any = ""
		if r.RawTotal.Valid {
			printed = r.RawTotal.Decimal
		}
		status := "ok"
		if len(r.Warnings) > 0 {
			status = "review"
		}
		receipts.Rows = append(receipts.Rows, []any{
			name, status, r.StoreName, r.Date, len(r.Items), r.ItemsTotal, printed, strings.Join(r.Warnings, "; "),
		})
	}

	doc := export.NewDocument("Receipt batch", items, receipts)
	doc.Style.Orientation = "landscape"
	doc.Style.ColumnWidths = map[int]float64{1: 24, 3: 40}
	return doc
}
