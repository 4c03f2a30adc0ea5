// Package receipt turns raw OCR text or a structured extraction summary from
// a printed retail receipt into a reconciled list of line items.
package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
)

// LineClass is the role of one OCR line on a receipt.
type LineClass string

const (
	ClassItem          LineClass = "item"
	ClassDiscount      LineClass = "discount"
	ClassTotal         LineClass = "total"
	ClassPaid          LineClass = "paid"
	ClassChange        LineClass = "change"
	ClassPaymentMethod LineClass = "payment_method"
	ClassHeader        LineClass = "header"
	ClassFooter        LineClass = "footer"
	ClassUnknown       LineClass = "unknown"
)

// Source identifies which capability produced a receipt.
type Source string

const (
	SourceOCR        Source = "ocr"
	SourceExtraction Source = "extraction"
)

// LineItem is one purchased product on a receipt.
type LineItem struct {
	ID                string          `json:"id"`
	Description       string          `json:"description"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Value             decimal.Decimal `json:"total"`
	RawLine           string          `json:"raw_line,omitempty"`
	IsDiscount        bool            `json:"is_discount"`
	Suspect           bool            `json:"suspect"`
	SuggestedCategory string          `json:"suggested_category,omitempty"`
}

// Receipt is the normalized result of one OCR or extraction pass.
type Receipt struct {
	StoreName string `json:"store_name"`
	// Date is an ISO date (2006-01-02), empty when the source had none.
	Date     string `json:"date,omitempty"`
	Currency string `json:"currency"`
	// RawTotal is the total printed on (or reported for) the receipt.
	RawTotal          decimal.NullDecimal `json:"raw_total_from_receipt"`
	ItemsTotal        decimal.Decimal     `json:"items_total"`
	Items             []LineItem          `json:"items"`
	Warnings          []string            `json:"warnings"`
	RawText           string              `json:"raw_text,omitempty"`
	Source            Source              `json:"source"`
	SuggestedCategory string              `json:"suggested_category,omitempty"`
}

// StructuredItem is one item as reported by an extraction service. Any
// numeric field may be missing.
type StructuredItem struct {
	ID          string
	Description string
	Quantity    decimal.NullDecimal
	UnitPrice   decimal.NullDecimal
	Total       decimal.NullDecimal
}

// StructuredSummary is the boundary shape of an extraction service result.
type StructuredSummary struct {
	Store             string
	PurchaseDate      string
	TotalAmount       decimal.NullDecimal
	Currency          string
	Items             []StructuredItem
	SuggestedCategory string
	RawText           string
}

// Total is the authoritative total: the printed one when present, the items
// sum otherwise.
func (r *Receipt) Total() decimal.Decimal {
	if r.RawTotal.Valid {
		return r.RawTotal.Decimal
	}
	return r.ItemsTotal
}

// HasDate reports whether a purchase date was found.
func (r *Receipt) HasDate() bool {
	return r.Date != ""
}

// SumItems recomputes ItemsTotal from the current items.
func (r *Receipt) SumItems() {
	sum := decimal.Zero
	for _, it := range r.Items {
		sum = sum.Add(it.Value)
	}
	r.ItemsTotal = money.Round(sum)
}
