package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/money"
)

const (
	textMismatchLead = "Items total does not match the receipt total"
	textMismatchHint = "A discount, change or payment line may have been misread as an item"
)

var (
	columnHeader    = regexp.MustCompile(`\bcod(?:igo)?\b.*\bdescricao\b`)
	itemCountFooter = regexp.MustCompile(`qtde?\.?\s*total\s*de\s*itens`)
	datePattern     = regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4}|\d{2})\b`)

	// "2 UN X 4,39" left in front of the line price.
	unitPriceNote = regexp.MustCompile(`(?i)(?:^|\s+)(\d+(?:[.,]\d+)?)\s*(?:(?:UN|UNID|KG|G|L|LT|PC|CX)\.?\s*)?[X*]\s*\d+(?:\.\d{3})*[.,]\d{2}\s*$`)
	// "2 UN", "1,5 KG" and anything after it. The number and unit must be
	// separated so sizes such as "5KG" stay in the description.
	quantityNote = regexp.MustCompile(`(?i)(?:^|\s+)(\d+(?:[.,]\d+)?)\s+(UN|UNID|KG|G|L|LT|PC|CX)\b.*$`)
	leadingCode  = regexp.MustCompile(`^(?:\d{3}\s+)?(?:\d{8,14}\s+)?`)
	trailingJunk = regexp.MustCompile(`(?i)[\s\-:]*(?:R\$)?[\s\-:]*$`)
)

// Parser builds a Receipt from the raw OCR text of one printed receipt.
type Parser struct {
	classifier    *Classifier
	suggester     *CategorySuggester
	reconciler    Reconciler
	storeLines    int
	storeMinChars int
	currency      string
}

func NewParser(rules Rules) *Parser {
	return &Parser{
		classifier:    NewClassifier(rules.Vocabulary),
		suggester:     NewCategorySuggester(rules.Categories),
		reconciler:    rules.Reconciler,
		storeLines:    rules.StoreNameLines,
		storeMinChars: rules.StoreNameMinChars,
		currency:      rules.DefaultCurrency,
	}
}

// Classifier exposes the line classifier the parser was built with.
func (p *Parser) Classifier() *Classifier {
	return p.classifier
}

// Parse never fails: unreadable lines are dropped and reconciliation
// problems are reported as warnings on the result.
func (p *Parser) Parse(raw string) *Receipt {
	lines := splitLines(raw)
	classes := make([]LineClass, len(lines))
	for i, l := range lines {
		classes[i] = p.classifier.Classify(l)
	}

	r := &Receipt{
		Currency: p.currency,
		Items:    []LineItem{},
		Warnings: []string{},
		RawText:  raw,
		Source:   SourceOCR,
	}

	storeIdx := p.findStoreName(lines, classes)
	if storeIdx >= 0 {
		r.StoreName = lines[storeIdx]
	}
	for _, l := range lines {
		if d, ok := findDate(l); ok {
			r.Date = d
			break
		}
	}
	r.RawTotal = printedTotal(lines, classes)

	start, end := p.itemWindow(lines, classes, storeIdx)
	p.extractItems(r, lines[start:end], classes[start:end])

	r.SumItems()
	if msg, ok := p.reconciler.Mismatch(r.ItemsTotal, r.RawTotal, textMismatchLead, textMismatchHint); ok {
		r.Warnings = append(r.Warnings, msg)
	}

	var suspects []string
	for i := range r.Items {
		if p.reconciler.IsSuspect(r.Items[i].Value, r.RawTotal) {
			r.Items[i].Suspect = true
			suspects = append(suspects, `"`+r.Items[i].Description+`" (`+money.Format(r.Items[i].Value)+`)`)
		}
	}
	if len(suspects) > 0 {
		r.Warnings = append(r.Warnings, "Suspect values, please review: "+strings.Join(suspects, ", "))
	}
	return r
}

// printedTotal reads the first total line carrying a two-decimal price. Bare
// digit runs ("TOTAL 2" for an item count) are used only when no total line
// has a proper price.
func printedTotal(lines []string, classes []LineClass) decimal.NullDecimal {
	fallback := decimal.NullDecimal{}
	for i, l := range lines {
		if classes[i] != ClassTotal {
			continue
		}
		if p, ok := money.LastPrice(l); ok {
			return decimal.NewNullDecimal(p.Value)
		}
		if v, err := money.Parse(l); err == nil && !fallback.Valid {
			fallback = decimal.NewNullDecimal(v)
		}
	}
	return fallback
}

func (p *Parser) extractItems(r *Receipt, lines []string, classes []LineClass) {
	var pending []string
	for i, line := range lines {
		switch classes[i] {
		case ClassItem:
			if item, ok := p.buildItem(line, pending); ok {
				// Positional ids keep Parse deterministic for the same text.
				item.ID = strconv.Itoa(len(r.Items) + 1)
				r.Items = append(r.Items, item)
			}
			pending = nil
		case ClassDiscount:
			pending = nil
			d, err := money.ParsePrice(line)
			if err != nil || d.IsZero() || len(r.Items) == 0 {
				continue
			}
			// OCR often drops the minus sign, so the discount always reduces.
			last := &r.Items[len(r.Items)-1]
			last.Value = last.Value.Sub(d.Abs())
			last.UnitPrice = money.Round(last.Value.Div(last.Quantity))
			last.IsDiscount = true
		case ClassUnknown:
			if datePattern.MatchString(line) {
				continue
			}
			pending = append(pending, line)
		default:
			pending = nil
		}
	}
}

func (p *Parser) buildItem(line string, pending []string) (LineItem, bool) {
	price, ok := money.LastPrice(line)
	if !ok {
		return LineItem{}, false
	}

	text := trailingJunk.ReplaceAllString(line[:price.Start], "")
	qty := decimal.NewFromInt(1)
	if m := unitPriceNote.FindStringSubmatchIndex(text); m != nil {
		if q, err := money.Parse(text[m[2]:m[3]]); err == nil && q.IsPositive() {
			qty = q
		}
		text = text[:m[0]]
	}
	if m := quantityNote.FindStringSubmatch(text); m != nil {
		switch strings.ToUpper(m[2]) {
		case "UN", "UNID", "KG", "PC", "CX":
			if q, err := money.Parse(m[1]); err == nil && q.IsPositive() && qty.Equal(decimal.NewFromInt(1)) {
				qty = q
			}
		}
		text = quantityNote.ReplaceAllString(text, "")
	}

	parts := append(append([]string{}, pending...), text)
	desc := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	desc = strings.TrimSpace(leadingCode.ReplaceAllString(desc, ""))
	desc = trailingJunk.ReplaceAllString(desc, "")
	if desc == "" {
		return LineItem{}, false
	}

	return LineItem{
		Description:       desc,
		Quantity:          qty,
		UnitPrice:         money.Round(price.Value.Div(qty)),
		Value:             price.Value,
		RawLine:           line,
		SuggestedCategory: p.suggester.Suggest(desc),
	}, true
}

// findStoreName returns the index of the first long enough unclassified line
// among the leading lines, skipping dates, or -1.
func (p *Parser) findStoreName(lines []string, classes []LineClass) int {
	for i := 0; i < len(lines) && i < p.storeLines; i++ {
		if classes[i] != ClassUnknown || datePattern.MatchString(lines[i]) {
			continue
		}
		if alnumCount(lines[i]) >= p.storeMinChars {
			return i
		}
	}
	return -1
}

// itemWindow narrows item detection to the lines between the column header
// and the item-count footer. Without a column header the window opens after
// the last letterhead line (store, tax id, date) preceding the first item.
func (p *Parser) itemWindow(lines []string, classes []LineClass, storeIdx int) (int, int) {
	start, end := -1, len(lines)
	for i, l := range lines {
		if columnHeader.MatchString(foldLower(l)) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		start = 0
		for i := range lines {
			if classes[i] == ClassItem || classes[i] == ClassDiscount {
				break
			}
			if i == storeIdx || classes[i] == ClassHeader || datePattern.MatchString(lines[i]) {
				start = i + 1
			}
		}
	}
	for i := start; i < len(lines); i++ {
		if itemCountFooter.MatchString(foldLower(lines[i])) {
			end = i
			break
		}
	}
	return start, end
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var out []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func alnumCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
