package migrations

import (
	"github.com/signworks/go-orderportal/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Category{}, &models.UserCategory{}, &models.Product{}, &models.Address{}, &models.Order{}, &models.OrderItem{})
}
