package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/signworks/go-orderportal/app/models"
	"gorm.io/gorm"
)

type AddressRepository interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	FindAddressByID(ctx context.Context, id string) (*models.Address, error)
	FindAddressesByUserID(ctx context.Context, userID string) ([]models.Address, error)
	DeleteAddress(ctx context.Context, id string) error
	GetDefaultAddressByUserID(ctx context.Context, userID string) (*models.Address, error)
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// CreateAddress inserts the address; when it is flagged default, any prior
// default for the same user is unset in the same transaction so at most one
// default exists per user.
func (r *GormAddressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	if address.ID == "" {
		address.ID = uuid.New().String()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			err := tx.Model(&models.Address{}).
				Where("user_id = ? AND is_default = ?", address.UserID, true).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (r *GormAddressRepository) FindAddressByID(ctx context.Context, id string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *GormAddressRepository) FindAddressesByUserID(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *GormAddressRepository) DeleteAddress(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", id).Error
}

func (r *GormAddressRepository) GetDefaultAddressByUserID(ctx context.Context, userID string) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&address).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}
