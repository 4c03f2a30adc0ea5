package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/models"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services/mocks"
)

func newExpenseService(t *testing.T) (*ExpenseService, *mocks.MockExpenseRepo, *mocks.MockSpendingAggregator) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExpenseRepo(ctrl)
	agg := mocks.NewMockSpendingAggregator(ctrl)
	svc := NewExpenseService(repo, agg, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC) }
	return svc, repo, agg
}

func expense(desc, category, amount string, day int) models.Expense {
	return models.Expense{
		Description: desc,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Status:      models.ExpenseStatusPaid,
		ExpenseDate: time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestExpenseService_ListMonth(t *testing.T) {
	svc, repo, _ := newExpenseService(t)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	repo.EXPECT().ListBetween(gomock.Any(), start, end).Return([]models.Expense{
		expense("Compra em MERCADO", "Mercado", "77.70", 1),
		expense("Gasolina", "Gasolina", "150.00", 5),
	}, nil)

	listing, err := svc.ListMonth(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, listing.Year)
	assert.Equal(t, 3, listing.Month)
	assert.Equal(t, "227.70", listing.Total.StringFixed(2))

	_, err = svc.ListMonth(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	repo.EXPECT().ListBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	_, err = svc.ListMonth(context.Background(), 2025, 2)
	assert.Error(t, err)
}

func TestExpenseService_Summary(t *testing.T) {
	svc, _, agg := newExpenseService(t)

	agg.EXPECT().Summarize(gomock.Any(), "last_month", gomock.Any()).
		DoAndReturn(func(ctx context.Context, period string, r *analytics.DateRange) (*analytics.Summary, error) {
			assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), r.Start)
			return &analytics.Summary{Period: period}, nil
		})

	s, err := svc.Summary(context.Background(), "last_month")
	require.NoError(t, err)
	assert.Equal(t, "last_month", s.Period)

	_, err = svc.Summary(context.Background(), "someday")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestExpenseService_Export(t *testing.T) {
	svc, repo, _ := newExpenseService(t)
	repo.EXPECT().ListBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.Expense{
		expense("Arroz", "Mercado", "20.00", 1),
		expense("Racao", "Pet", "50.00", 2),
		expense("Leite", "Mercado", "10.00", 3),
	}, nil)

	file, err := svc.Export(context.Background(), 2025, 3, export.FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, "expenses-2025-03.xlsx", file.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows("By category")
	require.NoError(t, err)
	assert.Equal(t, "Pet", rows[1][0])
	assert.Equal(t, "Mercado", rows[2][0])
}

func TestCategoryTotals(t *testing.T) {
	rows := categoryTotals([]models.Expense{
		expense("a", "Mercado", "5.00", 1),
		expense("b", "Pet", "9.00", 1),
		expense("c", "Mercado", "6.00", 1),
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Mercado", rows[0].Category)
	assert.Equal(t, "11.00", rows[0].Total.StringFixed(2))
	assert.EqualValues(t, 2, rows[0].Count)
}
