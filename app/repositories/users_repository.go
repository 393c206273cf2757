package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/signworks/go-orderportal/app/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepositoryImpl interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GrantCategories(ctx context.Context, tx *gorm.DB, userID string, categoryIDs []string) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GrantedCategoryIDs(ctx context.Context, userID string) ([]string, error)
	UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error
	DeleteWithOwned(ctx context.Context, tx *gorm.DB, userID string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepositoryImpl {
	return &userRepository{db}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	hashPass, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for user %s: %v", user.Username, err)
		return err
	}
	user.Password = string(hashPass)

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	return tx.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GrantCategories(ctx context.Context, tx *gorm.DB, userID string, categoryIDs []string) error {
	for _, categoryID := range categoryIDs {
		grant := models.UserCategory{UserID: userID, CategoryID: categoryID, CreatedAt: time.Now()}
		if err := tx.WithContext(ctx).Create(&grant).Error; err != nil {
			return fmt.Errorf("failed to grant category %s to user %s: %w", categoryID, userID, err)
		}
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Categories").First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Preload("Categories").Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GrantedCategoryIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.UserCategory{}).
		Where("user_id = ?", userID).
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error {
	updates := map[string]interface{}{
		"password":   newPasswordHash,
		"updated_at": time.Now(),
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update password for user %s: %w", userID, result.Error)
	}
	return nil
}

// DeleteWithOwned removes the user together with everything it owns: category
// grants, addresses, and orders with their items. Runs inside the caller's
// transaction.
func (r *userRepository) DeleteWithOwned(ctx context.Context, tx *gorm.DB, userID string) error {
	var orderIDs []string
	if err := tx.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Pluck("id", &orderIDs).Error; err != nil {
		return err
	}
	if len(orderIDs) > 0 {
		if err := tx.WithContext(ctx).Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Order{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserCategory{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Address{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.User{}, "id = ?", userID).Error
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
