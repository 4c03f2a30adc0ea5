package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/models"
)

//go:generate mockgen -destination=../services/mocks/mock_expense_repo.go -package=mocks -source=expense_repo.go ExpenseRepo

type ExpenseRepo interface {
	// ListBetween returns expenses dated in [start, end], oldest first.
	ListBetween(ctx context.Context, start, end time.Time) ([]models.Expense, error)
	ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]models.Expense, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepo {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) ListBetween(ctx context.Context, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("expense_date BETWEEN ? AND ?", start, end).
		Order("expense_date ASC, created_at ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepo) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}
