package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ExpenseStatusPaid    = "paga"
	ExpenseStatusPending = "pendente"
)

// Expense is one entry of the household ledger.
type Expense struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Description   string          `gorm:"type:varchar(500);not null" json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	Category      string          `gorm:"type:varchar(100);not null;index" json:"category"`
	PaymentMethod string          `gorm:"type:varchar(100)" json:"payment_method,omitempty"`
	Status        string          `gorm:"type:varchar(20);not null;default:'paga'" json:"status"`
	ExpenseDate   time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	ReceiptID     *uuid.UUID      `gorm:"type:uuid;index" json:"receipt_id,omitempty"`
	ReceiptItemID *uuid.UUID      `gorm:"type:uuid" json:"receipt_item_id,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
