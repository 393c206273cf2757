package services

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userServiceFixture struct {
	db       *gorm.DB
	service  *UserService
	admin    models.Actor
	category *models.Category
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()

	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	adminUser := &models.User{Username: "boss", Password: "secret", Role: models.RoleAdmin}
	require.NoError(t, userRepo.Create(ctx, db, adminUser))

	category := &models.Category{Name: "Road Signs", Emoji: "🛣️"}
	require.NoError(t, categoryRepo.Create(ctx, category))

	service := NewUserService(db, userRepo, categoryRepo, validator.New())

	return &userServiceFixture{
		db:       db,
		service:  service,
		admin:    models.Actor{ID: adminUser.ID, Username: adminUser.Username, Role: adminUser.Role},
		category: category,
	}
}

func TestCreateUser(t *testing.T) {
	f := newUserServiceFixture(t)
	ctx := context.Background()

	user, err := f.service.Create(ctx, f.admin, CreateUserInput{
		Username:    "acme",
		Password:    "hunter2",
		CategoryIDs: []string{f.category.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "hunter2", user.Password, "password must be stored hashed")
	require.Len(t, user.Categories, 1)
	assert.Equal(t, f.category.ID, user.Categories[0].ID)

	authed, err := f.service.Authenticate(ctx, "acme", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestCreateUserRejections(t *testing.T) {
	f := newUserServiceFixture(t)
	ctx := context.Background()

	valid := CreateUserInput{Username: "acme", Password: "hunter2", CategoryIDs: []string{f.category.ID}}
	_, err := f.service.Create(ctx, f.admin, valid)
	require.NoError(t, err)

	cases := []struct {
		name  string
		actor models.Actor
		input CreateUserInput
		kind  errs.Kind
	}{
		{
			name:  "non-admin",
			actor: models.Actor{ID: "x", Role: models.RoleUser},
			input: CreateUserInput{Username: "new", Password: "hunter2", CategoryIDs: []string{f.category.ID}},
			kind:  errs.KindUnauthorized,
		},
		{
			name:  "duplicate username",
			actor: f.admin,
			input: valid,
			kind:  errs.KindConflict,
		},
		{
			name:  "short password",
			actor: f.admin,
			input: CreateUserInput{Username: "new", Password: "abc", CategoryIDs: []string{f.category.ID}},
			kind:  errs.KindValidation,
		},
		{
			name:  "no category grants",
			actor: f.admin,
			input: CreateUserInput{Username: "new", Password: "hunter2"},
			kind:  errs.KindValidation,
		},
		{
			name:  "unknown category",
			actor: f.admin,
			input: CreateUserInput{Username: "new", Password: "hunter2", CategoryIDs: []string{"missing"}},
			kind:  errs.KindNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Create(ctx, tc.actor, tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.kind, errs.KindOf(err))
		})
	}
}

func TestDeleteUserCascades(t *testing.T) {
	f := newUserServiceFixture(t)
	ctx := context.Background()

	user, err := f.service.Create(ctx, f.admin, CreateUserInput{
		Username:    "acme",
		Password:    "hunter2",
		CategoryIDs: []string{f.category.ID},
	})
	require.NoError(t, err)

	address := models.Address{
		UserID: user.ID, Label: "HQ", Street: "1 Main St",
		City: "Leeds", County: "West Yorkshire", PostCode: "LS1 1AA", Country: "UK",
	}
	require.NoError(t, f.db.Create(&address).Error)

	order := models.Order{UserID: user.ID, Total: decimal.NewFromFloat(5), DeliveryAddress: "1 Main St"}
	require.NoError(t, f.db.Create(&order).Error)
	item := models.OrderItem{OrderID: order.ID, ProductID: "p1", ProductName: "Hammer", Quantity: 1, Price: decimal.NewFromFloat(5)}
	require.NoError(t, f.db.Create(&item).Error)

	require.NoError(t, f.service.Delete(ctx, f.admin, user.ID))

	for _, model := range []interface{}{&models.User{}, &models.Order{}, &models.OrderItem{}, &models.Address{}, &models.UserCategory{}} {
		var count int64
		require.NoError(t, f.db.Model(model).Where("1 = 1").Count(&count).Error)
		if _, isUser := model.(*models.User); isUser {
			assert.EqualValues(t, 1, count, "only the admin account should remain")
			continue
		}
		assert.Zero(t, count)
	}
}

func TestDeleteAdminRejected(t *testing.T) {
	f := newUserServiceFixture(t)

	err := f.service.Delete(context.Background(), f.admin, f.admin.ID)
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	f := newUserServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.admin, CreateUserInput{
		Username: "acme", Password: "hunter2", CategoryIDs: []string{f.category.ID},
	})
	require.NoError(t, err)

	_, err = f.service.Authenticate(ctx, "acme", "wrong")
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))

	_, err = f.service.Authenticate(ctx, "nobody", "hunter2")
	assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	f := newUserServiceFixture(t)
	ctx := context.Background()

	user, err := f.service.Create(ctx, f.admin, CreateUserInput{
		Username: "acme", Password: "hunter2", CategoryIDs: []string{f.category.ID},
	})
	require.NoError(t, err)
	actor := models.Actor{ID: user.ID, Username: user.Username, Role: user.Role}

	err = f.service.ChangePassword(ctx, actor, ChangePasswordInput{CurrentPassword: "wrong", NewPassword: "newpass"})
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	err = f.service.ChangePassword(ctx, actor, ChangePasswordInput{CurrentPassword: "hunter2", NewPassword: "abc"})
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	require.NoError(t, f.service.ChangePassword(ctx, actor, ChangePasswordInput{
		CurrentPassword: "hunter2",
		NewPassword:     "newpass",
	}))

	_, err = f.service.Authenticate(ctx, "acme", "newpass")
	require.NoError(t, err)
}
