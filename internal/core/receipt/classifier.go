package receipt

import (
	"regexp"
	"strings"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
)

var (
	totalLead     = regexp.MustCompile(`^total\s+r?\$?`)
	currencyPrice = regexp.MustCompile(`r\$\s*-?\s*\d+(?:\.\d{3})*[.,]\d{2}`)
	trailingPrice = regexp.MustCompile(`\d+[.,]\d{2}\s*-?\s*$`)
)

// Classifier assigns one LineClass to a receipt line. Rules are checked in a
// fixed order and the first match wins, since summary lines (total, change,
// payment) carry price-like digits too.
type Classifier struct {
	vocab Vocabulary
}

func NewClassifier(v Vocabulary) *Classifier {
	return &Classifier{vocab: v.clone()}
}

// Classify returns the class of a single line. The result depends only on
// the line content.
func (c *Classifier) Classify(line string) LineClass {
	l := foldLower(line)
	switch {
	case l == "":
		return ClassUnknown
	case containsAny(l, c.vocab.Header):
		return ClassHeader
	case containsAny(l, c.vocab.Footer):
		return ClassFooter
	case c.isTotal(l):
		return ClassTotal
	case containsAny(l, c.vocab.Paid):
		return ClassPaid
	case containsAny(l, c.vocab.Change):
		return ClassChange
	case containsAny(l, c.vocab.PaymentMethod):
		return ClassPaymentMethod
	case containsAny(l, c.vocab.Discount):
		return ClassDiscount
	case isItem(l):
		return ClassItem
	default:
		return ClassUnknown
	}
}

func (c *Classifier) isTotal(l string) bool {
	// "total pago" starts like a total line but is the amount tendered.
	if containsAny(l, c.vocab.Paid) {
		return false
	}
	if containsAny(l, c.vocab.TotalPhrases) {
		return true
	}
	for _, p := range c.vocab.TotalPrefixes {
		if strings.HasPrefix(l, p) {
			return true
		}
	}
	return totalLead.MatchString(l)
}

func isItem(l string) bool {
	if !strings.ContainsAny(l, "0123456789") || !money.HasPrice(l) {
		return false
	}
	return currencyPrice.MatchString(l) || trailingPrice.MatchString(l)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
