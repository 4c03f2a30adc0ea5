package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Receipt is an imported purchase receipt.
type Receipt struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	StoreName         string              `gorm:"type:varchar(255)" json:"store_name"`
	PurchaseDate      *time.Time          `gorm:"type:date;index" json:"purchase_date,omitempty"`
	Currency          string              `gorm:"type:varchar(3);not null;default:'BRL'" json:"currency"`
	RawTotal          decimal.NullDecimal `gorm:"type:numeric(15,2)" json:"raw_total"`
	ItemsTotal        decimal.Decimal     `gorm:"type:numeric(15,2);not null;default:0" json:"items_total"`
	Source            string              `gorm:"type:varchar(20);not null" json:"source"` // ocr or extraction
	SuggestedCategory string              `gorm:"type:varchar(100)" json:"suggested_category,omitempty"`
	Warnings          pq.StringArray      `gorm:"type:text[]" json:"warnings"`
	RawText           string              `gorm:"type:text" json:"raw_text,omitempty"`
	ImageKey          string              `gorm:"type:varchar(500)" json:"image_key,omitempty"`
	ImageURL          string              `gorm:"type:varchar(1000)" json:"image_url,omitempty"`
	Parsed            datatypes.JSON      `gorm:"type:jsonb" json:"-"`
	CreatedAt         time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Receipt) TableName() string {
	return "receipts"
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ReceiptItem is one line of a stored receipt.
type ReceiptItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"receipt_id"`
	Position          int             `gorm:"not null" json:"position"`
	LineRef           string          `gorm:"type:varchar(64)" json:"line_ref,omitempty"` // item id from the parse result
	Description       string          `gorm:"type:varchar(500);not null" json:"description"`
	Quantity          decimal.Decimal `gorm:"type:numeric(12,3);not null;default:1" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"unit_price"`
	Total             decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total"`
	RawLine           string          `gorm:"type:text" json:"raw_line,omitempty"`
	Suspect           bool            `gorm:"not null;default:false" json:"suspect"`
	SuggestedCategory string          `gorm:"type:varchar(100)" json:"suggested_category,omitempty"`
}

func (ReceiptItem) TableName() string {
	return "receipt_items"
}

func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
