package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots name and unit price at order-creation time; later
// product edits never touch it.
type OrderItem struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID     string          `gorm:"size:36;not null;index" json:"order_id"`
	ProductID   string          `gorm:"size:36;not null;index" json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

// Extension is quantity times the snapshotted unit price.
func (oi *OrderItem) Extension() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
