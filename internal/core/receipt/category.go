package receipt

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CategorySuggester proposes a spending category from an item description.
type CategorySuggester struct {
	rules []CategoryRule
}

// NewCategorySuggester copies rules, folding keywords so accented forms in
// the table still match.
func NewCategorySuggester(rules []CategoryRule) *CategorySuggester {
	folded := make([]CategoryRule, 0, len(rules))
	for _, r := range rules {
		kw := foldUpper(r.Keyword)
		if kw == "" || r.Category == "" {
			continue
		}
		folded = append(folded, CategoryRule{Keyword: kw, Category: r.Category})
	}
	return &CategorySuggester{rules: folded}
}

// Suggest returns the category of the first keyword found in description,
// or "" when nothing matches.
func (s *CategorySuggester) Suggest(description string) string {
	upper := foldUpper(description)
	if upper == "" {
		return ""
	}
	for _, r := range s.rules {
		if strings.Contains(upper, r.Keyword) {
			return r.Category
		}
	}
	return ""
}

// fold removes combining marks (NFD decomposition) so "FEIJÃO" reads "FEIJAO".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func foldUpper(s string) string {
	return strings.ToUpper(fold(strings.TrimSpace(s)))
}

func foldLower(s string) string {
	return strings.ToLower(fold(strings.TrimSpace(s)))
}
