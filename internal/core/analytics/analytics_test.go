package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDateRange(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		period string
		start  time.Time
		end    time.Time
	}{
		{"this_month", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{"", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{"last_month", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{"this_year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{"this_week", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
		{"last_30_days", time.Date(2025, 2, 13, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			r, err := GetDateRange(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, "expense_date", r.Field)
		})
	}

	_, err := GetDateRange("forever", now)
	assert.Error(t, err)
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(2024, time.February, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, 29, r.End.Day())
}

func TestBuildSummary(t *testing.T) {
	r := MonthRange(2025, time.March, time.UTC)
	rows := []CategoryTotal{
		{Category: "Mercado", Total: decimal.RequireFromString("75.00"), Count: 3},
		{Category: "", Total: decimal.RequireFromString("25.00"), Count: 1},
	}

	s := BuildSummary("this_month", r, rows)
	assert.True(t, s.Total.Equal(decimal.RequireFromString("100")))
	assert.EqualValues(t, 4, s.Count)
	assert.Equal(t, 75.0, s.ByCategory[0].Share)
	assert.Equal(t, "Outros", s.ByCategory[1].Category)
	assert.Equal(t, []string{"Mercado", "Outros"}, s.Chart.Labels)
	assert.Equal(t, []float64{75, 25}, s.Chart.Values)
	assert.Equal(t, "", rows[1].Category, "input rows are not modified")
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary("today", MonthRange(2025, time.March, time.UTC), nil)
	assert.True(t, s.Total.IsZero())
	assert.Empty(t, s.ByCategory)
	assert.NotNil(t, s.Chart.Labels)
}
