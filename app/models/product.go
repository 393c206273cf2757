package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Image       string          `gorm:"type:text" json:"image,omitempty"`
	CategoryID  string          `gorm:"size:36;not null;index" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category"`

	// Nil means the product is visible to every user granted its category.
	AssignedToID *string `gorm:"size:36;index" json:"assigned_to_id"`
	AssignedTo   *User   `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
