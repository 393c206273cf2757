package repositories

import (
	"context"
	"fmt"

	"github.com/signworks/go-orderportal/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	FindVisibleToUser(ctx context.Context, userID string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").Preload("AssignedTo").First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("AssignedTo").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindVisibleToUser returns products inside the user's granted categories
// that are either assigned to that user or unassigned. The category grant is
// the access gate: an individually assigned product outside a granted
// category is never returned.
func (r *productRepository) FindVisibleToUser(ctx context.Context, userID string) ([]models.Product, error) {
	var products []models.Product

	granted := r.db.Model(&models.UserCategory{}).
		Select("category_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("category_id IN (?)", granted).
		Where("assigned_to_id = ? OR assigned_to_id IS NULL", userID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load visible products for user %s: %w", userID, err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}
