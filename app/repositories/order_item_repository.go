package repositories

import (
	"context"

	"github.com/signworks/go-orderportal/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error
	FindByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error)
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) BulkCreate(ctx context.Context, tx *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *gormOrderItemRepository) FindByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
