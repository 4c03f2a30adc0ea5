// Package analytics aggregates expenses into spending summaries.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive time window on Field.
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string
}

// CategoryTotal is the spending of one category inside a window.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
	Share    float64         `json:"share"`
}

// MonthTotal is the spending of one calendar month ("2025-03").
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type PieChartData struct {
	Type   string    `json:"type"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Summary is the payload of the spending summary endpoint.
type Summary struct {
	Period     string          `json:"period"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Total      decimal.Decimal `json:"total"`
	Count      int64           `json:"count"`
	ByCategory []CategoryTotal `json:"by_category"`
	Chart      PieChartData    `json:"chart"`
}
