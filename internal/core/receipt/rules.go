package receipt

import "github.com/shopspring/decimal"

// CategoryRule maps a description keyword to a spending category. Keywords
// are matched as substrings after accent folding and upper-casing.
type CategoryRule struct {
	Keyword  string
	Category string
}

// Vocabulary holds the phrase lists the line classifier matches against.
// Phrases are matched against lower-cased, accent-folded lines.
type Vocabulary struct {
	Header        []string
	TotalPhrases  []string
	TotalPrefixes []string
	Paid          []string
	Change        []string
	PaymentMethod []string
	Discount      []string
	Footer        []string
}

// Rules is the full configuration of the parsing pipeline. It is copied into
// each component at construction time; mutating a Rules value afterwards
// does not affect components already built from it.
type Rules struct {
	Vocabulary Vocabulary
	Categories []CategoryRule
	Reconciler Reconciler

	// StoreNameLines is how many leading lines are scanned for a store name.
	StoreNameLines int
	// StoreNameMinChars is the minimum count of letters and digits a store
	// name candidate must carry.
	StoreNameMinChars int
	// DefaultDescription names structured items that arrive without one.
	DefaultDescription string
	// DefaultCurrency is assumed for structured summaries without a currency.
	DefaultCurrency string
}

// DefaultRules returns the rules tuned for Brazilian retail receipts (NFC-e
// and SAT coupons).
func DefaultRules() Rules {
	return Rules{
		Vocabulary: Vocabulary{
			Header: []string{
				"cnpj", "cpf", "documento auxiliar", "consumidor", "inscric",
				"telefone", "fone:", "tel:",
			},
			TotalPhrases:  []string{"total a pagar", "valor total r$", "valor a pagar"},
			TotalPrefixes: []string{"total:", "total :"},
			Paid:          []string{"valor pago", "total pago"},
			Change:        []string{"troco"},
			PaymentMethod: []string{
				"forma de pagamento", "forma pagamento", "cartao debito", "cartao de debito",
				"cartao credito", "cartao de credito", "dinheiro", "pix",
			},
			Discount: []string{"desconto"},
			Footer: []string{
				"total de itens", "total itens", "tributos", "obrigado", "volte sempre",
			},
		},
		Categories: []CategoryRule{
			{Keyword: "CARNE", Category: "Mercado"},
			{Keyword: "FILE", Category: "Mercado"},
			{Keyword: "FRANGO", Category: "Mercado"},
			{Keyword: "LEITE", Category: "Mercado"},
			{Keyword: "ARROZ", Category: "Mercado"},
			{Keyword: "FEIJAO", Category: "Mercado"},
			{Keyword: "BIS", Category: "Mercado"},
			{Keyword: "ROUPA", Category: "Presentes"},
			{Keyword: "ROUP", Category: "Presentes"},
			{Keyword: "GASOLINA", Category: "Gasolina"},
			{Keyword: "ETANOL", Category: "Gasolina"},
			{Keyword: "DIESEL", Category: "Gasolina"},
			{Keyword: "PET", Category: "Pet"},
			{Keyword: "RACAO", Category: "Pet"},
			{Keyword: "RACA", Category: "Pet"},
		},
		Reconciler:         DefaultReconciler(),
		StoreNameLines:     5,
		StoreNameMinChars:  10,
		DefaultDescription: "Item",
		DefaultCurrency:    "BRL",
	}
}

// WithThresholds returns a copy of r with the reconciliation thresholds
// replaced. Non-positive arguments keep the current value.
func (r Rules) WithThresholds(tolerance, suspectRatio, suspectCeiling float64) Rules {
	if tolerance > 0 {
		r.Reconciler.Tolerance = decimal.NewFromFloat(tolerance)
	}
	if suspectRatio > 0 {
		r.Reconciler.SuspectRatio = decimal.NewFromFloat(suspectRatio)
	}
	if suspectCeiling > 0 {
		r.Reconciler.SuspectCeiling = decimal.NewFromFloat(suspectCeiling)
	}
	return r
}

func (v Vocabulary) clone() Vocabulary {
	return Vocabulary{
		Header:        cloneFolded(v.Header),
		TotalPhrases:  cloneFolded(v.TotalPhrases),
		TotalPrefixes: cloneFolded(v.TotalPrefixes),
		Paid:          cloneFolded(v.Paid),
		Change:        cloneFolded(v.Change),
		PaymentMethod: cloneFolded(v.PaymentMethod),
		Discount:      cloneFolded(v.Discount),
		Footer:        cloneFolded(v.Footer),
	}
}

func cloneFolded(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if f := foldLower(p); f != "" {
			out = append(out, f)
		}
	}
	return out
}
