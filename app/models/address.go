package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Label     string    `gorm:"size:100;not null" json:"label"`
	Street    string    `gorm:"size:255;not null" json:"street"`
	City      string    `gorm:"size:100;not null" json:"city"`
	County    string    `gorm:"size:100;not null" json:"county"`
	PostCode  string    `gorm:"size:20;not null" json:"post_code"`
	Country   string    `gorm:"size:100;default:'UK';not null" json:"country"`
	IsDefault bool      `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// FormatLine flattens the address into the single-line form snapshotted onto
// orders. The snapshot survives later address deletion.
func (a *Address) FormatLine() string {
	line := a.Street + ", " + a.City + ", " + a.County + ", " + a.PostCode
	if a.Country != "" {
		line += ", " + a.Country
	}
	return line
}
