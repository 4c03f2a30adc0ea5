package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Aggregator runs spending queries against the expenses table.
type Aggregator struct {
	db    *gorm.DB
	table string
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db, table: "expenses"}
}

func (a *Aggregator) window(ctx context.Context, r *DateRange) *gorm.DB {
	return a.db.WithContext(ctx).Table(a.table).
		Where(fmt.Sprintf("%s BETWEEN ? AND ?", r.Field), r.Start, r.End)
}

// SpendingByCategory sums expense amounts per category, largest first.
func (a *Aggregator) SpendingByCategory(ctx context.Context, r *DateRange) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := a.window(ctx, r).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("category aggregation failed: %w", err)
	}
	return rows, nil
}

// MonthlyTotals sums expense amounts per calendar month.
func (a *Aggregator) MonthlyTotals(ctx context.Context, r *DateRange) ([]MonthTotal, error) {
	var rows []MonthTotal
	err := a.window(ctx, r).
		Select(fmt.Sprintf("to_char(%s, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS total", r.Field)).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("monthly aggregation failed: %w", err)
	}
	return rows, nil
}

// Summarize loads category totals for a named period and builds a summary.
func (a *Aggregator) Summarize(ctx context.Context, period string, r *DateRange) (*Summary, error) {
	rows, err := a.SpendingByCategory(ctx, r)
	if err != nil {
		return nil, err
	}
	return BuildSummary(period, r, rows), nil
}

// BuildSummary totals category rows, fills each row's share of the total
// and derives the pie chart.
func BuildSummary(period string, r *DateRange, rows []CategoryTotal) *Summary {
	s := &Summary{
		Period:     period,
		Start:      r.Start,
		End:        r.End,
		Total:      decimal.Zero,
		ByCategory: make([]CategoryTotal, len(rows)),
		Chart:      PieChartData{Type: "pie", Labels: []string{}, Values: []float64{}},
	}
	copy(s.ByCategory, rows)

	for _, row := range rows {
		s.Total = s.Total.Add(row.Total)
		s.Count += row.Count
	}
	for i := range s.ByCategory {
		row := &s.ByCategory[i]
		if row.Category == "" {
			row.Category = "Outros"
		}
		if !s.Total.IsZero() {
			row.Share = row.Total.Div(s.Total).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
		}
		s.Chart.Labels = append(s.Chart.Labels, row.Category)
		s.Chart.Values = append(s.Chart.Values, row.Total.InexactFloat64())
	}
	return s
}
