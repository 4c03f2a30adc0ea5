package export

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
)

// ReceiptDocument lays out a parsed receipt as an items table and a
// summary table carrying totals and warnings.
func ReceiptDocument(r *receipt.Receipt) *Document {
	title := "Receipt"
	if r.StoreName != "" {
		title = fmt.Sprintf("Receipt - %s", r.StoreName)
	}

	items := Table{
		Name:    "Items",
		Headers: []string{"#", "Description", "Qty", "Unit price", "Total", "Category", "Suspect"},
	}
	for i, it := range r.Items {
		items.Rows = append(items.Rows, []any{
			i + 1, it.Description, it.Quantity.String(), it.UnitPrice, it.Value, it.SuggestedCategory, it.Suspect,
		})
	}
	items.Footer = []any{"", "Items total", "", "", r.ItemsTotal, "", ""}

	summary := Table{
		Name:    "Summary",
		Headers: []string{"Field", "Value"},
		Rows: [][]any{
			{"Store", r.StoreName},
			{"Date", r.Date},
			{"Currency", r.Currency},
			{"Items total", r.ItemsTotal},
		},
	}
	if r.RawTotal.Valid {
		summary.Rows = append(summary.Rows, []any{"Receipt total", r.RawTotal.Decimal})
	}
	for _, w := range r.Warnings {
		summary.Rows = append(summary.Rows, []any{"Warning", w})
	}

	doc := NewDocument(title, items, summary)
	doc.Style.ColumnWidths = map[int]float64{1: 40, 5: 14}
	return doc
}
