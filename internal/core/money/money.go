// Package money parses Brazilian-formatted currency amounts ("R$ 1.234,56")
// into exact decimals.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoAmount is returned when a fragment carries no usable numeric content.
var ErrNoAmount = errors.New("no parseable amount")

var (
	nonNumeric = regexp.MustCompile(`[^\d,.\-]`)

	// A price with exactly two fractional digits, optionally grouped in thousands.
	pricePattern = regexp.MustCompile(`\d+(?:\.\d{3})*[.,]\d{2}\b`)

	signBefore = regexp.MustCompile(`-\s*(?:R\$)?\s*$`)
	signAfter  = regexp.MustCompile(`^\s*-`)
)

// Price is a price fragment located inside a line of text.
type Price struct {
	Value decimal.Decimal
	// Start and End delimit the digits of the fragment in the source line.
	Start int
	End   int
}

// Parse converts a loosely formatted fragment into a decimal. Periods are
// thousands separators and the first comma is the decimal separator. A minus
// sign is accepted as a prefix or a suffix ("5,00-").
func Parse(text string) (decimal.Decimal, error) {
	cleaned := nonNumeric.ReplaceAllString(text, "")
	if !strings.ContainsAny(cleaned, "0123456789") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNoAmount, text)
	}

	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	negative := false
	switch {
	case strings.HasPrefix(cleaned, "-"):
		negative = true
		cleaned = strings.TrimLeft(cleaned, "-")
	case strings.HasSuffix(cleaned, "-"):
		negative = true
		cleaned = strings.TrimRight(cleaned, "-")
	}
	if strings.Contains(cleaned, "-") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNoAmount, text)
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrNoAmount, text)
	}
	if negative {
		value = value.Neg()
	}
	return value, nil
}

// LastPrice finds the rightmost two-decimal price on a line. A minus sign
// written directly before (optionally followed by "R$") or after the digits
// makes the value negative.
func LastPrice(line string) (Price, bool) {
	matches := pricePattern.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return Price{}, false
	}
	loc := matches[len(matches)-1]
	value := fragmentValue(line[loc[0]:loc[1]])

	if signBefore.MatchString(line[:loc[0]]) || signAfter.MatchString(line[loc[1]:]) {
		value = value.Neg()
	}
	return Price{Value: value, Start: loc[0], End: loc[1]}, true
}

// ParsePrice prefers an explicit two-decimal price and falls back to Parse,
// so digit runs from quantities or document numbers are not read as prices
// when a proper price is present.
func ParsePrice(text string) (decimal.Decimal, error) {
	if p, ok := LastPrice(text); ok {
		return p.Value, nil
	}
	return Parse(text)
}

// HasPrice reports whether the line contains a two-decimal price anywhere.
func HasPrice(line string) bool {
	return pricePattern.MatchString(line)
}

// Round rounds to cents, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Format renders a value with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// fragmentValue reads a pricePattern match. The last separator is the
// decimal point whether it is a comma or a period.
func fragmentValue(fragment string) decimal.Decimal {
	sep := strings.LastIndexAny(fragment, ".,")
	intPart := strings.ReplaceAll(fragment[:sep], ".", "")
	value, err := decimal.NewFromString(intPart + "." + fragment[sep+1:])
	if err != nil {
		return decimal.Zero
	}
	return value
}
