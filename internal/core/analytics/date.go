package analytics

import (
	"fmt"
	"time"
)

const expenseDateField = "expense_date"

// GetDateRange resolves a named period relative to now. Unknown periods
// are an error.
func GetDateRange(period string, now time.Time) (*DateRange, error) {
	loc := now.Location()
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	endOfDay := func(t time.Time) time.Time {
		return day(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	var start, end time.Time
	switch period {
	case "today":
		start, end = day(now), endOfDay(now)
	case "this_week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start, end = day(now.AddDate(0, 0, -weekday+1)), endOfDay(now)
	case "", "this_month":
		period = "this_month"
		start, end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), endOfDay(now)
	case "last_month":
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, loc)
		end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	case "this_year":
		start, end = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), endOfDay(now)
	case "last_30_days":
		start, end = day(now.AddDate(0, 0, -30)), endOfDay(now)
	case "last_90_days":
		start, end = day(now.AddDate(0, 0, -90)), endOfDay(now)
	default:
		return nil, fmt.Errorf("unknown period: %s", period)
	}

	return &DateRange{Start: start, End: end, Field: expenseDateField}, nil
}

// MonthRange returns the full calendar month containing year/month.
func MonthRange(year int, month time.Month, loc *time.Location) *DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return &DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
		Field: expenseDateField,
	}
}
