package receipt

import (
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var dateLayouts = []string{
	isoDate,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
}

// findDate returns the first dd/mm/yyyy or dd/mm/yy date in line as an ISO
// date. Two-digit years are read as 20yy.
func findDate(line string) (string, bool) {
	for _, m := range datePattern.FindAllStringSubmatch(line, -1) {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		t, err := time.Parse("02/01/2006", m[1]+"/"+m[2]+"/"+year)
		if err != nil {
			continue
		}
		return t.Format(isoDate), true
	}
	return "", false
}

// NormalizeDate converts the date formats seen in extraction payloads to an
// ISO date. It returns "" when the input cannot be read.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate)
		}
	}
	if d, ok := findDate(s); ok {
		return d
	}
	return ""
}
