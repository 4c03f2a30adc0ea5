package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
)

// Key variants seen in the Portuguese and English payload shapes.
var (
	storeKeys     = []string{"loja", "store", "store_name", "vendor_name"}
	dateKeys      = []string{"data_compra", "purchase_date", "date"}
	totalKeys     = []string{"total_cupom", "total_amount", "total", "total_itens"}
	currencyKeys  = []string{"moeda", "currency", "currency_code"}
	itemsKeys     = []string{"itens", "items", "line_items"}
	categoryKeys  = []string{"suggestedCategory", "suggested_category"}
	itemIDKeys    = []string{"id"}
	itemDescKeys  = []string{"descricao", "description", "text", "name"}
	itemQtyKeys   = []string{"quantidade", "quantity", "qty"}
	itemUnitKeys  = []string{"valorUnitario", "unit_price", "price"}
	itemTotalKeys = []string{"total", "line_total", "net_total"}
)

// ParsePayload reads a JSON answer from a model or service, tolerating a
// surrounding markdown code fence, validates it and decodes it.
func ParsePayload(raw []byte) (*receipt.StructuredSummary, error) {
	cleaned := bytes.TrimSpace(raw)
	cleaned = bytes.TrimPrefix(cleaned, []byte("```json"))
	cleaned = bytes.TrimPrefix(cleaned, []byte("```"))
	cleaned = bytes.TrimSuffix(cleaned, []byte("```"))
	cleaned = bytes.TrimSpace(cleaned)

	if err := ValidatePayload(cleaned); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(cleaned))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	s := DecodeSummary(m)
	return &s, nil
}

// DecodeSummary maps a loosely shaped summary onto StructuredSummary. Numbers
// may be JSON numbers or localized strings ("1.234,56"); anything unreadable
// is treated as missing.
func DecodeSummary(m map[string]any) receipt.StructuredSummary {
	s := receipt.StructuredSummary{
		Store:             firstString(m, storeKeys),
		PurchaseDate:      firstString(m, dateKeys),
		TotalAmount:       firstNumber(m, totalKeys),
		Currency:          firstString(m, currencyKeys),
		SuggestedCategory: firstString(m, categoryKeys),
	}

	for _, key := range itemsKeys {
		list, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, raw := range list {
			im, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			s.Items = append(s.Items, receipt.StructuredItem{
				ID:          firstString(im, itemIDKeys),
				Description: firstString(im, itemDescKeys),
				Quantity:    firstNumber(im, itemQtyKeys),
				UnitPrice:   firstNumber(im, itemUnitKeys),
				Total:       firstNumber(im, itemTotalKeys),
			})
		}
		break
	}
	return s
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func firstNumber(m map[string]any, keys []string) decimal.NullDecimal {
	for _, k := range keys {
		if d, ok := toDecimal(m[k]); ok {
			return decimal.NewNullDecimal(d)
		}
	}
	return decimal.NullDecimal{}
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero, false
		}
		// Plain machine numbers ("12.5") first, then the Brazilian format.
		if d, err := decimal.NewFromString(s); err == nil {
			return d, true
		}
		d, err := money.ParsePrice(s)
		return d, err == nil
	}
	return decimal.Zero, false
}
