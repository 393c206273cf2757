package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	repo := NewUserRepository(db)
	user := &models.User{Username: username, Password: "secret"}
	require.NoError(t, repo.Create(context.Background(), db, user))
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Emoji: "📦"}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), category))
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name, categoryID string, assignedToID *string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:         name,
		Description:  "test product",
		Price:        decimal.NewFromFloat(9.99),
		CategoryID:   categoryID,
		AssignedToID: assignedToID,
	}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), product))
	return product
}

func TestFindVisibleToUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userRepo := NewUserRepository(db)
	productRepo := NewProductRepository(db)

	buyer := seedUser(t, db, "acme-buyer")
	other := seedUser(t, db, "other-buyer")

	granted := seedCategory(t, db, "Road Signs")
	ungranted := seedCategory(t, db, "PPE Signs")
	require.NoError(t, userRepo.GrantCategories(ctx, db, buyer.ID, []string{granted.ID}))

	open := seedProduct(t, db, "Stop Sign", granted.ID, nil)
	mine := seedProduct(t, db, "Bespoke Speed Limit", granted.ID, &buyer.ID)
	seedProduct(t, db, "Someone Else's Sign", granted.ID, &other.ID)
	seedProduct(t, db, "Hi-Vis Vest Sign", ungranted.ID, nil)
	seedProduct(t, db, "Assigned But Out Of Scope", ungranted.ID, &buyer.ID)

	visible, err := productRepo.FindVisibleToUser(ctx, buyer.ID)
	require.NoError(t, err)

	names := make([]string, 0, len(visible))
	for _, p := range visible {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{open.Name, mine.Name}, names)
}

func TestFindVisibleToUserNoGrants(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	buyer := seedUser(t, db, "no-grants")
	category := seedCategory(t, db, "Door Signs")
	seedProduct(t, db, "Push Door Sign", category.ID, nil)

	visible, err := NewProductRepository(db).FindVisibleToUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestProductGetByIDMissing(t *testing.T) {
	db := newTestDB(t)

	product, err := NewProductRepository(db).GetByID(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestCategoryDeleteWithProducts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	categoryRepo := NewCategoryRepository(db)
	productRepo := NewProductRepository(db)
	userRepo := NewUserRepository(db)

	buyer := seedUser(t, db, "grant-holder")
	category := seedCategory(t, db, "Hazard Signs")
	keep := seedCategory(t, db, "Recycling Signs")
	require.NoError(t, userRepo.GrantCategories(ctx, db, buyer.ID, []string{category.ID, keep.ID}))

	seedProduct(t, db, "High Voltage Warning", category.ID, nil)
	survivor := seedProduct(t, db, "Recycle Here", keep.ID, nil)

	require.NoError(t, categoryRepo.DeleteWithProducts(ctx, category.ID))

	gone, err := categoryRepo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	products, err := productRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, survivor.ID, products[0].ID)

	grants, err := userRepo.GrantedCategoryIDs(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, grants)
}
