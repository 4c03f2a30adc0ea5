package receipt

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
)

const (
	structuredMismatchLead = "Items sum differs from reported total"
	structuredMismatchHint = "Some items may be missing or duplicated"
)

// Normalizer converts a StructuredSummary from an extraction service into a
// Receipt. Item boundaries come from the service and are not re-derived.
type Normalizer struct {
	suggester          *CategorySuggester
	reconciler         Reconciler
	defaultDescription string
	defaultCurrency    string
}

func NewNormalizer(rules Rules) *Normalizer {
	return &Normalizer{
		suggester:          NewCategorySuggester(rules.Categories),
		reconciler:         rules.Reconciler,
		defaultDescription: rules.DefaultDescription,
		defaultCurrency:    rules.DefaultCurrency,
	}
}

// Normalize fills quantity, unit price and total for every item, drops items
// with no amount at all and reconciles the items sum against the reported
// total. Items are not flagged as suspect here.
func (n *Normalizer) Normalize(s StructuredSummary) *Receipt {
	r := &Receipt{
		StoreName:         strings.TrimSpace(s.Store),
		Date:              NormalizeDate(s.PurchaseDate),
		Currency:          strings.ToUpper(strings.TrimSpace(s.Currency)),
		Items:             make([]LineItem, 0, len(s.Items)),
		Warnings:          []string{},
		RawText:           s.RawText,
		Source:            SourceExtraction,
		SuggestedCategory: s.SuggestedCategory,
	}
	if r.Currency == "" {
		r.Currency = n.defaultCurrency
	}

	for i, it := range s.Items {
		item, ok := n.normalizeItem(i, it)
		if ok {
			r.Items = append(r.Items, item)
		}
	}
	r.SumItems()

	if s.TotalAmount.Valid {
		r.RawTotal = decimal.NewNullDecimal(money.Round(s.TotalAmount.Decimal))
		if msg, ok := n.reconciler.Mismatch(r.ItemsTotal, r.RawTotal, structuredMismatchLead, structuredMismatchHint); ok {
			r.Warnings = append(r.Warnings, msg)
		}
	}
	// Without a reported total RawTotal stays null and Total() falls back to
	// the items sum, which stays correct after items are edited.
	return r
}

func (n *Normalizer) normalizeItem(idx int, it StructuredItem) (LineItem, bool) {
	qty := decimal.NewFromInt(1)
	if it.Quantity.Valid && it.Quantity.Decimal.IsPositive() {
		qty = it.Quantity.Decimal
	}

	var unit, total decimal.Decimal
	switch {
	case it.Total.Valid && !it.Total.Decimal.IsZero():
		total = it.Total.Decimal
		if it.UnitPrice.Valid {
			unit = it.UnitPrice.Decimal
		} else {
			unit = money.Round(total.Div(qty))
		}
	case it.UnitPrice.Valid:
		unit = it.UnitPrice.Decimal
		total = money.Round(unit.Mul(qty))
	case it.Total.Valid:
		// An explicit zero total with nothing else to go on.
		total = decimal.Zero
	default:
		return LineItem{}, false
	}

	desc := strings.Join(strings.Fields(it.Description), " ")
	if desc == "" {
		desc = n.defaultDescription
	}
	id := strings.TrimSpace(it.ID)
	if id == "" {
		id = strconv.Itoa(idx + 1)
	}

	return LineItem{
		ID:                id,
		Description:       desc,
		Quantity:          qty,
		UnitPrice:         unit,
		Value:             total,
		SuggestedCategory: n.suggester.Suggest(desc),
	}, true
}
