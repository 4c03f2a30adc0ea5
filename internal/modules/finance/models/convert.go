package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
)

// NewReceipt maps a parse result onto a storable receipt with its items.
// The full parse result is kept as JSON.
func NewReceipt(r *receipt.Receipt) (*Receipt, error) {
	parsed, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}

	m := &Receipt{
		StoreName:         r.StoreName,
		Currency:          r.Currency,
		RawTotal:          r.RawTotal,
		ItemsTotal:        r.ItemsTotal,
		Source:            string(r.Source),
		SuggestedCategory: r.SuggestedCategory,
		Warnings:          orEmpty(r.Warnings),
		RawText:           r.RawText,
		Parsed:            parsed,
		Items:             make([]ReceiptItem, 0, len(r.Items)),
	}
	if d, err := time.Parse("2006-01-02", r.Date); err == nil {
		m.PurchaseDate = &d
	}
	for i, it := range r.Items {
		m.Items = append(m.Items, ReceiptItem{
			Position:          i + 1,
			LineRef:           it.ID,
			Description:       it.Description,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			Total:             it.Value,
			RawLine:           it.RawLine,
			Suspect:           it.Suspect,
			SuggestedCategory: it.SuggestedCategory,
		})
	}
	return m, nil
}

// ToParsed rebuilds the parse result shape from a stored receipt.
func (m *Receipt) ToParsed() *receipt.Receipt {
	r := &receipt.Receipt{
		StoreName:         m.StoreName,
		Currency:          m.Currency,
		RawTotal:          m.RawTotal,
		ItemsTotal:        m.ItemsTotal,
		Items:             make([]receipt.LineItem, 0, len(m.Items)),
		Warnings:          append([]string{}, m.Warnings...),
		RawText:           m.RawText,
		Source:            receipt.Source(m.Source),
		SuggestedCategory: m.SuggestedCategory,
	}
	if m.PurchaseDate != nil {
		r.Date = m.PurchaseDate.Format("2006-01-02")
	}
	for _, it := range m.Items {
		qty := it.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		r.Items = append(r.Items, receipt.LineItem{
			ID:                it.LineRef,
			Description:       it.Description,
			Quantity:          qty,
			UnitPrice:         it.UnitPrice,
			Value:             it.Total,
			RawLine:           it.RawLine,
			Suspect:           it.Suspect,
			SuggestedCategory: it.SuggestedCategory,
		})
	}
	return r
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
