package models

import "time"

// UserCategory is a category grant. The pair is the primary key, so the same
// category cannot be granted to a user twice.
type UserCategory struct {
	UserID     string    `gorm:"size:36;primaryKey" json:"user_id"`
	CategoryID string    `gorm:"size:36;primaryKey" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}
