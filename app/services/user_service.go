package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MinPasswordLength is the minimum accepted credential length.
const MinPasswordLength = 4

type CreateUserInput struct {
	Username    string   `json:"username" validate:"required"`
	Password    string   `json:"password" validate:"required"`
	CategoryIDs []string `json:"category_ids" validate:"required,min=1"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type UserService struct {
	db           *gorm.DB
	userRepo     repositories.UserRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	validate     *validator.Validate
}

func NewUserService(
	db *gorm.DB,
	userRepo repositories.UserRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	validate *validator.Validate,
) *UserService {
	return &UserService{
		db:           db,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		validate:     validate,
	}
}

// Create provisions a USER-role account with at least one category grant.
// The account and its grants are written in one transaction.
func (s *UserService) Create(ctx context.Context, actor models.Actor, input CreateUserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can manage users")
	}
	if err := s.validate.Struct(&input); err != nil {
		return nil, errs.Validation("username, password, and at least one category are required")
	}
	if len(input.Password) < MinPasswordLength {
		return nil, errs.Newf(errs.KindValidation, "password must be at least %d characters", MinPasswordLength)
	}

	username := strings.TrimSpace(input.Username)

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to check username: %w", err))
	}
	if existing != nil {
		return nil, errs.Conflict("username already taken")
	}

	for _, categoryID := range input.CategoryIDs {
		category, err := s.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return nil, errs.Internal(fmt.Errorf("failed to load category %s: %w", categoryID, err))
		}
		if category == nil {
			return nil, errs.Newf(errs.KindNotFound, "category %s not found", categoryID)
		}
	}

	user := &models.User{
		Username: username,
		Password: input.Password,
		Role:     models.RoleUser,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		return s.userRepo.GrantCategories(ctx, tx, user.ID, input.CategoryIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("username already taken")
		}
		return nil, errs.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	return s.userRepo.FindByID(ctx, user.ID)
}

func (s *UserService) List(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can manage users")
	}
	users, err := s.userRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to list users: %w", err))
	}
	return users, nil
}

// Delete removes a USER account and cascades to its orders, category grants,
// and addresses. ADMIN accounts can never be deleted through this interface.
func (s *UserService) Delete(ctx context.Context, actor models.Actor, userID string) error {
	if !actor.IsAdmin() {
		return errs.Unauthorized("only admins can manage users")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to load user %s: %w", userID, err))
	}
	if user == nil {
		return errs.NotFound("user not found")
	}
	if user.Role == models.RoleAdmin {
		return errs.Validation("cannot delete admin users")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.userRepo.DeleteWithOwned(ctx, tx, userID)
	})
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to delete user %s: %w", userID, err))
	}

	log.Printf("user %s (%s) deleted with owned orders, grants, and addresses", user.Username, userID)
	return nil
}

// Authenticate checks credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to load user: %w", err))
	}
	if user == nil {
		return nil, errs.Unauthenticated("invalid username or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errs.Unauthenticated("invalid username or password")
	}
	return user, nil
}

// ChangePassword verifies the current credential before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, actor models.Actor, input ChangePasswordInput) error {
	if actor.IsAnonymous() {
		return errs.Unauthenticated("login required")
	}
	if err := s.validate.Struct(&input); err != nil {
		return errs.Validation("current password and new password are required")
	}
	if len(input.NewPassword) < MinPasswordLength {
		return errs.Newf(errs.KindValidation, "new password must be at least %d characters", MinPasswordLength)
	}

	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to load user %s: %w", actor.ID, err))
	}
	if user == nil {
		return errs.NotFound("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
		return errs.Validation("current password is incorrect")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to hash new password: %w", err))
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(newHash)); err != nil {
		return errs.Internal(err)
	}
	return nil
}
