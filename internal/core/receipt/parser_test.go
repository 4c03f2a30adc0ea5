package receipt

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
)

func newTestParser() *Parser {
	return NewParser(DefaultRules())
}

func assertTotalInvariant(t *testing.T, r *Receipt) {
	t.Helper()
	sum := decimal.Zero
	for _, it := range r.Items {
		sum = sum.Add(it.Value)
	}
	assert.Equal(t, money.Format(money.Round(sum)), money.Format(r.ItemsTotal))
}

func TestParser_EndToEnd(t *testing.T) {
	raw := strings.Join([]string{
		"MERCADO EXEMPLO",
		"CNPJ 12.345.678/0001-00",
		"01/03/2025",
		"ARROZ 5KG 29,90",
		"DESCONTO 5,00-",
		"LEITE INTEGRAL 12X1L 52,80",
		"TOTAL R$ 77,70",
	}, "\n")

	r := newTestParser().Parse(raw)

	assert.Contains(t, r.StoreName, "MERCADO EXEMPLO")
	assert.Equal(t, "2025-03-01", r.Date)
	require.True(t, r.RawTotal.Valid)
	assert.Equal(t, "77.70", money.Format(r.RawTotal.Decimal))

	require.Len(t, r.Items, 2)
	assert.Equal(t, "ARROZ 5KG", r.Items[0].Description)
	assert.Equal(t, "24.90", money.Format(r.Items[0].Value))
	assert.True(t, r.Items[0].IsDiscount)
	assert.Equal(t, "Mercado", r.Items[0].SuggestedCategory)
	assert.Equal(t, "LEITE INTEGRAL 12X1L", r.Items[1].Description)
	assert.Equal(t, "52.80", money.Format(r.Items[1].Value))
	assert.False(t, r.Items[1].IsDiscount)

	assert.Equal(t, "77.70", money.Format(r.ItemsTotal))
	assert.Empty(t, r.Warnings)
	assert.Equal(t, raw, r.RawText)
	assert.Equal(t, SourceOCR, r.Source)
	assertTotalInvariant(t, r)
}

func TestParser_DiscountFolding(t *testing.T) {
	tests := []struct {
		name     string
		discount string
	}{
		{name: "signed prefix", discount: "Desconto -5,00"},
		{name: "signed suffix", discount: "Desconto 5,00-"},
		{name: "unsigned", discount: "Desconto 5,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestParser().Parse("Arroz 5kg 29,90\n" + tt.discount)

			require.Len(t, r.Items, 1)
			assert.Equal(t, "Arroz 5kg", r.Items[0].Description)
			assert.Equal(t, "24.90", money.Format(r.Items[0].Value))
			assert.Equal(t, "24.90", money.Format(r.Items[0].UnitPrice))
			assert.True(t, r.Items[0].IsDiscount)
			assertTotalInvariant(t, r)
		})
	}
}

func TestParser_DiscountWithoutItemIgnored(t *testing.T) {
	r := newTestParser().Parse("DESCONTO 5,00\nFEIJAO 8,00")

	require.Len(t, r.Items, 1)
	assert.Equal(t, "8.00", money.Format(r.Items[0].Value))
	assert.False(t, r.Items[0].IsDiscount)
}

func TestParser_Reconciliation(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		wantWarnings int
	}{
		{name: "within tolerance", total: "100,04", wantWarnings: 0},
		{name: "outside tolerance", total: "100,06", wantWarnings: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := "CAFE 40,00\nACUCAR 60,00\nTOTAL A PAGAR " + tt.total
			r := newTestParser().Parse(raw)

			assert.Equal(t, "100.00", money.Format(r.ItemsTotal))
			require.Len(t, r.Warnings, tt.wantWarnings)
			if tt.wantWarnings > 0 {
				assert.Contains(t, r.Warnings[0], "100.00")
				assert.Contains(t, r.Warnings[0], "100.06")
				assert.Contains(t, r.Warnings[0], "misread")
			}
		})
	}
}

func TestParser_NoTotalSkipsReconciliation(t *testing.T) {
	r := newTestParser().Parse("CAFE 40,00\nACUCAR 60,00")

	assert.False(t, r.RawTotal.Valid)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, "100.00", money.Format(r.Total()))
}

func TestParser_ItemCountIsNotTheTotal(t *testing.T) {
	tests := []struct {
		name  string
		count string
	}{
		{name: "item count footer", count: "TOTAL ITENS 2"},
		{name: "total line without a price", count: "TOTAL VOLUMES 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestParser().Parse("ARROZ 10,00\nFEIJAO 8,00\n" + tt.count + "\nTOTAL R$ 18,00")

			require.True(t, r.RawTotal.Valid)
			assert.Equal(t, "18.00", money.Format(r.RawTotal.Decimal))
			assert.Empty(t, r.Warnings)
			require.Len(t, r.Items, 2)
			assert.False(t, r.Items[0].Suspect)
			assert.False(t, r.Items[1].Suspect)
		})
	}
}

func TestParser_DigitOnlyTotalFallback(t *testing.T) {
	r := newTestParser().Parse("CAFE 40,00\nTOTAL 40")

	require.True(t, r.RawTotal.Valid)
	assert.Equal(t, "40.00", money.Format(r.RawTotal.Decimal))
}

func TestParser_Deterministic(t *testing.T) {
	raw := "MERCADO EXEMPLO LTDA\nARROZ 5KG 29,90\nLEITE INTEGRAL 52,80\nTOTAL R$ 82,70"
	p := newTestParser()

	first, second := p.Parse(raw), p.Parse(raw)
	assert.Equal(t, first, second)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "1", first.Items[0].ID)
	assert.Equal(t, "2", first.Items[1].ID)
}

func TestParser_SuspectFlagging(t *testing.T) {
	r := newTestParser().Parse("SABAO 70,00\nDETERGENTE 55,00\nTOTAL R$ 50,00")

	require.Len(t, r.Items, 2)
	assert.True(t, r.Items[0].Suspect)
	assert.False(t, r.Items[1].Suspect)
	require.Len(t, r.Warnings, 2)
	assert.Contains(t, r.Warnings[1], `"SABAO" (70.00)`)
	assert.Len(t, r.Items, 2, "suspect items stay in the list")
	assert.Equal(t, "125.00", money.Format(r.ItemsTotal))
}

func TestParser_AbsoluteCeiling(t *testing.T) {
	r := newTestParser().Parse("TELEVISAO 1.899,00")

	require.Len(t, r.Items, 1)
	assert.Equal(t, "1899.00", money.Format(r.Items[0].Value))
	assert.True(t, r.Items[0].Suspect)
}

func TestParser_HeaderFooterWindow(t *testing.T) {
	raw := strings.Join([]string{
		"SUPERMERCADO BOM PRECO LTDA",
		"AV BRASIL 1000 LOJA 12,50",
		"CNPJ: 11.222.333/0001-81",
		"CODIGO DESCRICAO QTD UN VL UNIT VL ITEM",
		"001 7891000100103 FEIJAO CARIOCA",
		"1 UN X 8,49 8,49",
		"002 7896005800010 FRANGO CONGELADO 1,5 KG X 12,00 18,00",
		"QTD. TOTAL DE ITENS 2",
		"VALOR A PAGAR R$ 26,49",
		"CARTAO DE DEBITO 26,49",
		"TROCO 0,00",
		"TRIBUTOS APROXIMADOS R$ 3,10",
	}, "\n")

	r := newTestParser().Parse(raw)

	assert.Equal(t, "SUPERMERCADO BOM PRECO LTDA", r.StoreName)
	require.Len(t, r.Items, 2)

	assert.Equal(t, "FEIJAO CARIOCA", r.Items[0].Description)
	assert.Equal(t, "8.49", money.Format(r.Items[0].Value))
	assert.Equal(t, "Mercado", r.Items[0].SuggestedCategory)

	assert.Equal(t, "FRANGO CONGELADO", r.Items[1].Description)
	assert.Equal(t, "18.00", money.Format(r.Items[1].Value))
	assert.Equal(t, "1.5", r.Items[1].Quantity.String())
	assert.Equal(t, "12.00", money.Format(r.Items[1].UnitPrice))

	require.True(t, r.RawTotal.Valid)
	assert.Equal(t, "26.49", money.Format(r.RawTotal.Decimal))
	assert.Empty(t, r.Warnings)
}

func TestParser_WrappedDescription(t *testing.T) {
	raw := strings.Join([]string{
		"PADARIA PAO QUENTE",
		"CNPJ 11.222.333/0001-81",
		"BISCOITO RECHEADO",
		"CHOCOLATE 140G 3,99",
	}, "\n")

	r := newTestParser().Parse(raw)

	assert.Equal(t, "PADARIA PAO QUENTE", r.StoreName)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "BISCOITO RECHEADO CHOCOLATE 140G", r.Items[0].Description)
	assert.Equal(t, "CHOCOLATE 140G 3,99", r.Items[0].RawLine)
}

func TestParser_QuantityAnnotationStripped(t *testing.T) {
	r := newTestParser().Parse("Banana prata 2 UN 7,98")

	require.Len(t, r.Items, 1)
	assert.Equal(t, "Banana prata", r.Items[0].Description)
	assert.Equal(t, "2", r.Items[0].Quantity.String())
	assert.Equal(t, "3.99", money.Format(r.Items[0].UnitPrice))
}

func TestParser_EmptyDescriptionDropped(t *testing.T) {
	r := newTestParser().Parse("2 UN 7,98")

	assert.Empty(t, r.Items)
	assert.True(t, r.ItemsTotal.IsZero())
}

func TestParser_EmptyInput(t *testing.T) {
	r := newTestParser().Parse("")

	assert.Empty(t, r.Items)
	assert.Empty(t, r.Warnings)
	assert.Empty(t, r.StoreName)
	assert.False(t, r.HasDate())
	assert.False(t, r.RawTotal.Valid)
}

func TestParser_TwoDigitYear(t *testing.T) {
	r := newTestParser().Parse("POSTO CENTRAL COMBUSTIVEIS\nEmissao 15/08/24 10:31\nGASOLINA COMUM 150,00")

	assert.Equal(t, "2024-08-15", r.Date)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "GASOLINA COMUM", r.Items[0].Description)
	assert.Equal(t, "Gasolina", r.Items[0].SuggestedCategory)
}
