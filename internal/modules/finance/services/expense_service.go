package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/models"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/repositories"
)

type ExpenseService struct {
	repo       repositories.ExpenseRepo
	aggregator SpendingAggregator
	exporter   *export.Service
	now        func() time.Time
}

func NewExpenseService(repo repositories.ExpenseRepo, aggregator SpendingAggregator, exporter *export.Service) *ExpenseService {
	if exporter == nil {
		exporter = export.NewService()
	}
	return &ExpenseService{
		repo:       repo,
		aggregator: aggregator,
		exporter:   exporter,
		now:        time.Now,
	}
}

// MonthListing is the expenses of one calendar month.
type MonthListing struct {
	Year     int              `json:"year"`
	Month    int              `json:"month"`
	Total    decimal.Decimal  `json:"total"`
	Expenses []models.Expense `json:"expenses"`
}

// monthRange resolves year/month, defaulting zero values to the current
// month.
func (s *ExpenseService) monthRange(year, month int) (*analytics.DateRange, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < 1900 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d-%d", ErrInvalidMonth, year, month)
	}
	return analytics.MonthRange(year, time.Month(month), time.UTC), nil
}

func (s *ExpenseService) ListMonth(ctx context.Context, year, month int) (*MonthListing, error) {
	r, err := s.monthRange(year, month)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListBetween(ctx, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return &MonthListing{
		Year:     r.Start.Year(),
		Month:    int(r.Start.Month()),
		Total:    sumExpenses(expenses),
		Expenses: expenses,
	}, nil
}

// Summary aggregates spending by category for a named period.
func (s *ExpenseService) Summary(ctx context.Context, period string) (*analytics.Summary, error) {
	r, err := analytics.GetDateRange(period, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	if period == "" {
		period = "this_month"
	}
	return s.aggregator.Summarize(ctx, period, r)
}

// Export renders one month of expenses with a per-category breakdown.
func (s *ExpenseService) Export(ctx context.Context, year, month int, format export.Format) (*export.File, error) {
	listing, err := s.ListMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("%04d-%02d", listing.Year, listing.Month)

	entries := export.Table{
		Name:    "Expenses",
		Headers: []string{"Date", "Description", "Category", "Payment", "Status", "Amount"},
		Footer:  []any{"", "Total", "", "", "", listing.Total},
	}
	for _, e := range listing.Expenses {
		entries.Rows = append(entries.Rows, []any{
			e.ExpenseDate.Format("02/01/2006"), e.Description, e.Category, e.PaymentMethod, e.Status, e.Amount,
		})
	}

	r, _ := s.monthRange(listing.Year, listing.Month)
	summary := analytics.BuildSummary(label, r, categoryTotals(listing.Expenses))
	byCategory := export.Table{
		Name:    "By category",
		Headers: []string{"Category", "Count", "Total", "Share %"},
		Footer:  []any{"Total", summary.Count, summary.Total, ""},
	}
	for _, c := range summary.ByCategory {
		byCategory.Rows = append(byCategory.Rows, []any{c.Category, c.Count, c.Total, c.Share})
	}

	doc := export.NewDocument(fmt.Sprintf("Expenses %s", label), entries, byCategory)
	doc.Style.ColumnWidths = map[int]float64{1: 40}
	return s.exporter.Export(doc, format, "expenses-"+label)
}

// categoryTotals groups expenses in memory, largest category first.
func categoryTotals(expenses []models.Expense) []analytics.CategoryTotal {
	index := map[string]int{}
	var rows []analytics.CategoryTotal
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(rows)
			index[e.Category] = i
			rows = append(rows, analytics.CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		rows[i].Total = rows[i].Total.Add(e.Amount)
		rows[i].Count++
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Total.GreaterThan(rows[b].Total)
	})
	return rows
}

func sumExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
