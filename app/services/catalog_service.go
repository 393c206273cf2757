package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Emoji       string `json:"emoji" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryInput carries partial updates; nil fields are left untouched.
type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Emoji       *string `json:"emoji"`
	Description *string `json:"description"`
}

type ProductInput struct {
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	CategoryID   string          `json:"category_id" validate:"required"`
	AssignedToID *string         `json:"assigned_to_id"`
}

type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	CategoryID  *string          `json:"category_id"`

	// AssignedToID distinguishes "leave alone" (AssignedToSet false) from
	// "unassign" (set true, AssignedToID nil).
	AssignedToSet bool    `json:"-"`
	AssignedToID  *string `json:"assigned_to_id"`
}

type CatalogService struct {
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	userRepo     repositories.UserRepositoryImpl
	validate     *validator.Validate
}

func NewCatalogService(
	categoryRepo repositories.CategoryRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	validate *validator.Validate,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		validate:     validate,
	}
}

func (s *CatalogService) Categories(ctx context.Context, actor models.Actor) ([]models.Category, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to list categories: %w", err))
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor models.Actor, input CategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can manage categories")
	}
	if err := s.validate.Struct(&input); err != nil {
		return nil, errs.Validation("name and emoji are required")
	}

	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to check category name: %w", err))
	}
	if existing != nil {
		return nil, errs.Conflict("category name already exists")
	}

	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Emoji:       input.Emoji,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("category name already exists")
		}
		return nil, errs.Internal(fmt.Errorf("failed to create category: %w", err))
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actor models.Actor, id string, input UpdateCategoryInput) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can manage categories")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to load category %s: %w", id, err))
	}
	if category == nil {
		return nil, errs.NotFound("category not found")
	}

	if input.Name != nil && *input.Name != "" && *input.Name != category.Name {
		other, err := s.categoryRepo.GetByName(ctx, *input.Name)
		if err != nil {
			return nil, errs.Internal(fmt.Errorf("failed to check category name: %w", err))
		}
		if other != nil {
			return nil, errs.Conflict("category name already exists")
		}
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Emoji != nil && *input.Emoji != "" {
		category.Emoji = *input.Emoji
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("category name already exists")
		}
		return nil, errs.Internal(fmt.Errorf("failed to update category %s: %w", id, err))
	}
	return category, nil
}

// DeleteCategory removes the category and all products inside it.
func (s *CatalogService) DeleteCategory(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return errs.Unauthorized("only admins can manage categories")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to load category %s: %w", id, err))
	}
	if category == nil {
		return errs.NotFound("category not found")
	}

	if err := s.categoryRepo.DeleteWithProducts(ctx, id); err != nil {
		return errs.Internal(fmt.Errorf("failed to delete category %s: %w", id, err))
	}
	return nil
}

// ProductsForActor returns the full catalog for admins and the
// category-scoped subset for company users.
func (s *CatalogService) ProductsForActor(ctx context.Context, actor models.Actor) ([]models.Product, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}

	if actor.IsAdmin() {
		products, err := s.productRepo.GetAll(ctx)
		if err != nil {
			return nil, errs.Internal(fmt.Errorf("failed to list products: %w", err))
		}
		return products, nil
	}

	products, err := s.productRepo.FindVisibleToUser(ctx, actor.ID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return products, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor models.Actor, input ProductInput) (*models.Product, error) {
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can manage products")
	}
	if err := s.validate.Struct(&input); err != nil {
		return nil, errs.Validation("name, description, price, and category are required")
	}
	if input.Price.IsNegative() {
		return nil, errs.Validation("price must not be negative")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to load category %s: %w", input.CategoryID, err))
	}
	if category == nil {
		return nil, errs.NotFound("category not found")
	}

	if input.AssignedToID != nil {
		if err := s.checkAssignee(ctx, *input.AssignedToID); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Price:        input.Price,
		Image:        input.Image,
		CategoryID:   input.CategoryID,
		AssignedToID: input.AssignedToID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to create product: %w", err))
	}
	return s.reloadProduct(ctx, product.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor models.Actor, id string, input UpdateProductInput) (*models.Product, error) {
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can manage products")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to load product %s: %w", id, err))
	}
	if product == nil {
		return nil, errs.NotFound("product not found")
	}

	if input.Name != nil && *input.Name != "" {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil && *input.Description != "" {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, errs.Validation("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.CategoryID != nil && *input.CategoryID != "" {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, errs.Internal(fmt.Errorf("failed to load category %s: %w", *input.CategoryID, err))
		}
		if category == nil {
			return nil, errs.NotFound("category not found")
		}
		product.CategoryID = *input.CategoryID
	}
	if input.AssignedToSet {
		if input.AssignedToID != nil {
			if err := s.checkAssignee(ctx, *input.AssignedToID); err != nil {
				return nil, err
			}
		}
		product.AssignedToID = input.AssignedToID
		product.AssignedTo = nil
	}

	// Save the base row only; preloaded associations stay read-only.
	product.Category = models.Category{}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to update product %s: %w", id, err))
	}
	return s.reloadProduct(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return errs.Unauthorized("only admins can manage products")
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to load product %s: %w", id, err))
	}
	if product == nil {
		return errs.NotFound("product not found")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return errs.Internal(fmt.Errorf("failed to delete product %s: %w", id, err))
	}
	return nil
}

func (s *CatalogService) checkAssignee(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return errs.Internal(fmt.Errorf("failed to load user %s: %w", userID, err))
	}
	if user == nil {
		return errs.NotFound("assigned user not found")
	}
	return nil
}

func (s *CatalogService) reloadProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to reload product %s: %w", id, err))
	}
	return product, nil
}
