package receipt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
)

func TestNormalizer_DerivesMissingFigures(t *testing.T) {
	n := NewNormalizer(DefaultRules())

	r := n.Normalize(StructuredSummary{
		Store:        "Drogaria Sao Paulo",
		PurchaseDate: "2025-03-01 10:15:00",
		TotalAmount:  nullDec("59.80"),
		Items: []StructuredItem{
			{ID: "a", Description: "Dipirona 500mg", Quantity: nullDec("2"), Total: nullDec("19.80")},
			{Description: "  Leite   Ninho ", Quantity: nullDec("2"), UnitPrice: nullDec("20.00")},
			{Description: "sem valor"},
		},
	})

	assert.Equal(t, "Drogaria Sao Paulo", r.StoreName)
	assert.Equal(t, "2025-03-01", r.Date)
	assert.Equal(t, "BRL", r.Currency)
	assert.Equal(t, SourceExtraction, r.Source)
	require.Len(t, r.Items, 2)

	assert.Equal(t, "a", r.Items[0].ID)
	assert.Equal(t, "9.90", money.Format(r.Items[0].UnitPrice))
	assert.Equal(t, "19.80", money.Format(r.Items[0].Value))

	assert.Equal(t, "2", r.Items[1].ID)
	assert.Equal(t, "Leite Ninho", r.Items[1].Description)
	assert.Equal(t, "40.00", money.Format(r.Items[1].Value))
	assert.Equal(t, "Mercado", r.Items[1].SuggestedCategory)

	assert.Equal(t, "59.80", money.Format(r.ItemsTotal))
	assert.Empty(t, r.Warnings)
}

func TestNormalizer_ZeroQuantityDoesNotDivideByZero(t *testing.T) {
	n := NewNormalizer(DefaultRules())

	r := n.Normalize(StructuredSummary{
		Items: []StructuredItem{{Description: "Gasolina", Quantity: nullDec("0"), Total: nullDec("30")}},
	})

	require.Len(t, r.Items, 1)
	assert.Equal(t, "1", r.Items[0].Quantity.String())
	assert.Equal(t, "30.00", money.Format(r.Items[0].UnitPrice))
	assert.Equal(t, "30.00", money.Format(r.Items[0].Value))
}

func TestNormalizer_MissingTotalFallsBackToItems(t *testing.T) {
	n := NewNormalizer(DefaultRules())

	r := n.Normalize(StructuredSummary{
		Items: []StructuredItem{
			{UnitPrice: nullDec("10.00")},
			{Total: nullDec("5.50"), Quantity: nullDec("-3")},
		},
	})

	require.Len(t, r.Items, 2)
	assert.Equal(t, "Item", r.Items[0].Description)
	assert.Equal(t, "1", r.Items[1].Quantity.String())
	assert.False(t, r.RawTotal.Valid)
	assert.Equal(t, "15.50", money.Format(r.Total()))
	assert.Empty(t, r.Warnings)

	r.Items = r.Items[:1]
	r.SumItems()
	assert.Equal(t, "10.00", money.Format(r.Total()))
}

func TestNormalizer_MismatchWarning(t *testing.T) {
	n := NewNormalizer(DefaultRules())

	r := n.Normalize(StructuredSummary{
		TotalAmount: nullDec("100.06"),
		Currency:    "usd",
		Items: []StructuredItem{
			{Total: nullDec("600.00")},
			{Total: decimal.NewNullDecimal(decimal.RequireFromString("-500.00"))},
		},
	})

	assert.Equal(t, "USD", r.Currency)
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], "Items sum differs from reported total")
	assert.Contains(t, r.Warnings[0], "100.00")
	assert.Contains(t, r.Warnings[0], "100.06")
	for _, it := range r.Items {
		assert.False(t, it.Suspect)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := map[string]string{
		"2025-03-01":           "2025-03-01",
		"2025-03-01T10:15:00Z": "2025-03-01",
		"01/03/2025":           "2025-03-01",
		"01/03/25":             "2025-03-01",
		"data 01/03/2025":      "2025-03-01",
		"31/02/2025":           "",
		"":                     "",
		"ontem":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDate(in), in)
	}
}
