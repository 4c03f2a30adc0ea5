package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/models"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/database"
)

// testDB connects to TEST_DATABASE_URL and applies the finance migrations.
// Tests are skipped when it is not set.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	dir, err := filepath.Abs("../../../../migrations/finance")
	require.NoError(t, err)
	m, err := migrate.New("file://"+dir, url)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}
	_, _ = m.Close()

	db, err := database.NewDB(url, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.GORM
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func storedReceipt() *models.Receipt {
	return &models.Receipt{
		StoreName:  "MERCADO EXEMPLO",
		Currency:   "BRL",
		ItemsTotal: dec("35.30"),
		Source:     "ocr",
		Warnings:   []string{},
		Items: []models.ReceiptItem{
			{Position: 3, LineRef: "3", Description: "PAO", Quantity: dec("1"), UnitPrice: dec("2.50"), Total: dec("2.50")},
			{Position: 1, LineRef: "1", Description: "ARROZ", Quantity: dec("1"), UnitPrice: dec("24.90"), Total: dec("24.90")},
			{Position: 2, LineRef: "2", Description: "LEITE", Quantity: dec("2"), UnitPrice: dec("3.95"), Total: dec("7.90")},
		},
	}
}

func TestReceiptRepo_CreateWithExpenses(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	receipts, expenses := NewReceiptRepo(db), NewExpenseRepo(db)

	r := storedReceipt()
	booked := []models.Expense{{
		Description: "Compra em MERCADO EXEMPLO",
		Amount:      dec("35.30"),
		Category:    "Mercado",
		Status:      models.ExpenseStatusPaid,
		ExpenseDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, receipts.CreateWithExpenses(ctx, r, booked))
	t.Cleanup(func() {
		db.Delete(&models.Expense{}, "receipt_id = ?", r.ID)
		db.Delete(&models.Receipt{}, "id = ?", r.ID)
	})

	got, err := receipts.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "35.30", got.ItemsTotal.StringFixed(2))
	require.Len(t, got.Items, 3)
	assert.Equal(t, []string{"ARROZ", "LEITE", "PAO"},
		[]string{got.Items[0].Description, got.Items[1].Description, got.Items[2].Description}, "items come back in position order")

	linked, err := expenses.ListByReceipt(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "35.30", linked[0].Amount.StringFixed(2))
}

func TestReceiptRepo_CreateWithExpensesRollsBack(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	receipts := NewReceiptRepo(db)

	r := storedReceipt()
	missingItem := uuid.New()
	booked := []models.Expense{{
		Description:   "ARROZ",
		Amount:        dec("24.90"),
		Category:      "Mercado",
		Status:        models.ExpenseStatusPaid,
		ExpenseDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		ReceiptItemID: &missingItem,
	}}

	err := receipts.CreateWithExpenses(ctx, r, booked)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create expenses")

	_, err = receipts.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound, "the receipt insert is rolled back with the expenses")
}

func TestReceiptRepo_GetByIDNotFound(t *testing.T) {
	db := testDB(t)

	_, err := NewReceiptRepo(db).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
