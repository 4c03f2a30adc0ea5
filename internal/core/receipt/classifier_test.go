package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(DefaultRules().Vocabulary)

	tests := []struct {
		line string
		want LineClass
	}{
		{"", ClassUnknown},
		{"   ", ClassUnknown},
		{"CNPJ 12.345.678/0001-00", ClassHeader},
		{"DOCUMENTO AUXILIAR DA NOTA FISCAL 12,34", ClassHeader},
		{"CONSUMIDOR NAO IDENTIFICADO", ClassHeader},
		{"Inscrição Estadual 123.456,78", ClassHeader},
		{"TOTAL A PAGAR 77,70", ClassTotal},
		{"Total: 12,00", ClassTotal},
		{"TOTAL R$ 77,70", ClassTotal},
		{"VALOR TOTAL R$ 77,70", ClassTotal},
		{"VALOR PAGO 100,00", ClassPaid},
		{"TOTAL PAGO 100,00", ClassPaid},
		{"TROCO 22,30", ClassChange},
		{"Cartão de Crédito 77,70", ClassPaymentMethod},
		{"DINHEIRO 100,00", ClassPaymentMethod},
		{"PIX 77,70", ClassPaymentMethod},
		{"DESCONTO -5,00", ClassDiscount},
		{"Desconto", ClassDiscount},
		{"QTD. TOTAL DE ITENS 3", ClassFooter},
		{"TOTAL ITENS 2", ClassFooter},
		{"Tributos totais incidentes R$ 5,32", ClassFooter},
		{"ARROZ 5KG 29,90", ClassItem},
		{"Feijão preto R$ 8,49 UN", ClassItem},
		{"LEITE INTEGRAL", ClassUnknown},
		{"RUA DAS FLORES 123", ClassUnknown},
		{"01/03/2025 14:22", ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := c.Classify(tt.line)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, c.Classify(tt.line), "classification must be stable")
		})
	}
}

func TestClassifier_TaxIDNeverItem(t *testing.T) {
	c := NewClassifier(DefaultRules().Vocabulary)
	for _, line := range []string{
		"CNPJ: 12.345.678/0001-99 10,50",
		"CPF do consumidor 123.456.789-10 R$ 9,99",
		"Telefone (11) 3333-4444 12,00",
	} {
		assert.NotEqual(t, ClassItem, c.Classify(line), line)
	}
}

func TestClassifier_OwnsVocabulary(t *testing.T) {
	v := DefaultRules().Vocabulary
	c := NewClassifier(v)
	v.Discount[0] = "arroz"
	assert.Equal(t, ClassItem, c.Classify("ARROZ 29,90"))
}
