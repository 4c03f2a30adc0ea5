package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySuggester_Suggest(t *testing.T) {
	s := NewCategorySuggester(DefaultRules().Categories)

	tests := []struct {
		description string
		want        string
	}{
		{"Feijão Carioca 1kg", "Mercado"},
		{"file de peito", "Mercado"},
		{"BISCOITO RECHEADO", "Mercado"},
		{"Gasolina comum", "Gasolina"},
		{"ETANOL HIDRATADO", "Gasolina"},
		{"Ração cães 15kg", "Pet"},
		{"ROUPA INFANTIL", "Presentes"},
		{"DETERGENTE NEUTRO", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Suggest(tt.description))
		})
	}
}

func TestCategorySuggester_FirstKeywordWins(t *testing.T) {
	s := NewCategorySuggester([]CategoryRule{
		{Keyword: "Feijão", Category: "Grãos"},
		{Keyword: "FEIJAO", Category: "Mercado"},
		{Keyword: "", Category: "ignored"},
	})
	assert.Equal(t, "Grãos", s.Suggest("feijao preto"))
}
