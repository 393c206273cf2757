package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// OrderStatuses lists every accepted status in intended forward order, with
// CANCELLED reachable from any state.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID     string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID string `gorm:"size:36;not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Total is fixed at creation as the sum of line extensions and is never
	// recomputed afterwards.
	Total  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	Status string          `gorm:"size:20;default:'PENDING';not null" json:"status"`

	// Denormalized snapshot, not a foreign key.
	DeliveryAddress   string `gorm:"type:text" json:"delivery_address"`
	PONumber          string `gorm:"size:100" json:"po_number,omitempty"`
	CustomerEmail     string `gorm:"size:100" json:"customer_email,omitempty"`
	EmailNotification bool   `gorm:"default:true" json:"email_notification"`

	OrderItems []OrderItem `json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

// Ref is the short human-facing order reference used in emails and listings.
func (o *Order) Ref() string {
	if len(o.ID) < 8 {
		return o.ID
	}
	return o.ID[:8]
}
