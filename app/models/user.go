package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID         string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Username   string     `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Role       string     `gorm:"size:20;default:'USER';not null" json:"role"`
	Categories []Category `gorm:"many2many:user_categories;" json:"categories,omitempty"`
	Addresses  []Address  `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Actor is the authenticated identity performing an operation. It is resolved
// once per request at the boundary and passed explicitly into services.
type Actor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
