package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Emoji       string    `gorm:"size:16;not null" json:"emoji"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Products    []Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated by list queries, not a stored column.
	ProductCount int64 `gorm:"->;-:migration" json:"product_count"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
