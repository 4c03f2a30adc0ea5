package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/models"
)

//go:generate mockgen -destination=../services/mocks/mock_receipt_repo.go -package=mocks -source=receipt_repo.go ReceiptRepo

// ReceiptRepo stores receipts together with the expenses created from them.
type ReceiptRepo interface {
	// CreateWithExpenses inserts the receipt, its items and the expenses in
	// one transaction.
	CreateWithExpenses(ctx context.Context, receipt *models.Receipt, expenses []models.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error)
	List(ctx context.Context, limit int) ([]models.Receipt, error)
}

type receiptRepo struct {
	db *gorm.DB
}

func NewReceiptRepo(db *gorm.DB) ReceiptRepo {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) CreateWithExpenses(ctx context.Context, receipt *models.Receipt, expenses []models.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			return fmt.Errorf("failed to create receipt: %w", err)
		}
		if len(expenses) == 0 {
			return nil
		}
		for i := range expenses {
			expenses[i].ReceiptID = &receipt.ID
		}
		if err := tx.Create(&expenses).Error; err != nil {
			return fmt.Errorf("failed to create expenses: %w", err)
		}
		return nil
	})
}

func (r *receiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&receipt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// List returns the most recent receipts without their items.
func (r *receiptRepo) List(ctx context.Context, limit int) ([]models.Receipt, error) {
	var receipts []models.Receipt
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}
