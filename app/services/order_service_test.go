package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	db      *gorm.DB
	service *OrderService
	mailer  *fakeMailer

	buyer  models.Actor
	admin  models.Actor
	hammer *models.Product
	chisel *models.Product
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	db := newTestDB(t)
	ctx := context.Background()

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)

	buyerUser := &models.User{Username: "acme", Password: "secret"}
	require.NoError(t, userRepo.Create(ctx, db, buyerUser))
	adminUser := &models.User{Username: "boss", Password: "secret", Role: models.RoleAdmin}
	require.NoError(t, userRepo.Create(ctx, db, adminUser))

	category := &models.Category{Name: "Tools", Emoji: "🔨"}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(ctx, category))

	hammer := &models.Product{
		Name:        "Hammer",
		Description: "Claw hammer",
		Price:       decimal.NewFromFloat(9.99),
		CategoryID:  category.ID,
	}
	require.NoError(t, productRepo.Create(ctx, hammer))

	chisel := &models.Product{
		Name:        "Chisel",
		Description: "Wood chisel",
		Price:       decimal.NewFromFloat(4.50),
		CategoryID:  category.ID,
	}
	require.NoError(t, productRepo.Create(ctx, chisel))

	mailer := &fakeMailer{}
	service := NewOrderService(db, orderRepo, orderItemRepo, productRepo, mailer, validator.New(), "Test Store")

	return &orderServiceFixture{
		db:      db,
		service: service,
		mailer:  mailer,
		buyer:   models.Actor{ID: buyerUser.ID, Username: buyerUser.Username, Role: buyerUser.Role},
		admin:   models.Actor{ID: adminUser.ID, Username: adminUser.Username, Role: adminUser.Role},
		hammer:  hammer,
		chisel:  chisel,
	}
}

func (f *orderServiceFixture) placeOrder(t *testing.T) *models.Order {
	t.Helper()

	order, err := f.service.Place(context.Background(), f.buyer, PlaceOrderInput{
		Items: []OrderLineInput{
			{ProductID: f.hammer.ID, Quantity: 2, Price: decimal.NewFromFloat(9.99)},
		},
		DeliveryAddress: "1 Main St, Leeds, LS1 1AA, UK",
		PONumber:        "PO-1001",
		CustomerEmail:   "buyer@acme.test",
	})
	require.NoError(t, err)
	return order
}

func TestPlaceOrder(t *testing.T) {
	f := newOrderServiceFixture(t)

	order := f.placeOrder(t)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(19.98)), "total was %s", order.Total)
	assert.Equal(t, "PO-1001", order.PONumber)
	assert.True(t, order.EmailNotification)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, "Hammer", order.OrderItems[0].ProductName)

	require.Eventually(t, func() bool { return f.mailer.count() == 1 }, time.Second, 10*time.Millisecond)
	mail := f.mailer.last()
	assert.Equal(t, "buyer@acme.test", mail.To)
	assert.Contains(t, mail.Subject, "Order Confirmation")
	assert.Contains(t, mail.Subject, order.Ref())
}

func TestPlaceOrderRejections(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	validItems := []OrderLineInput{{ProductID: f.hammer.ID, Quantity: 1, Price: decimal.NewFromFloat(9.99)}}

	cases := []struct {
		name  string
		actor models.Actor
		input PlaceOrderInput
		kind  errs.Kind
	}{
		{
			name:  "anonymous",
			input: PlaceOrderInput{Items: validItems, DeliveryAddress: "x", CustomerEmail: "a@b.test"},
			kind:  errs.KindUnauthenticated,
		},
		{
			name:  "no items",
			actor: f.buyer,
			input: PlaceOrderInput{DeliveryAddress: "x", CustomerEmail: "a@b.test"},
			kind:  errs.KindValidation,
		},
		{
			name:  "blank address",
			actor: f.buyer,
			input: PlaceOrderInput{Items: validItems, DeliveryAddress: "   ", CustomerEmail: "a@b.test"},
			kind:  errs.KindValidation,
		},
		{
			name:  "bad email",
			actor: f.buyer,
			input: PlaceOrderInput{Items: validItems, DeliveryAddress: "x", CustomerEmail: "not-an-email"},
			kind:  errs.KindValidation,
		},
		{
			name:  "zero quantity",
			actor: f.buyer,
			input: PlaceOrderInput{
				Items:           []OrderLineInput{{ProductID: f.hammer.ID, Quantity: 0, Price: decimal.NewFromFloat(9.99)}},
				DeliveryAddress: "x", CustomerEmail: "a@b.test",
			},
			kind: errs.KindValidation,
		},
		{
			name:  "negative price",
			actor: f.buyer,
			input: PlaceOrderInput{
				Items:           []OrderLineInput{{ProductID: f.hammer.ID, Quantity: 1, Price: decimal.NewFromFloat(-1)}},
				DeliveryAddress: "x", CustomerEmail: "a@b.test",
			},
			kind: errs.KindValidation,
		},
		{
			name:  "unknown product",
			actor: f.buyer,
			input: PlaceOrderInput{
				Items:           []OrderLineInput{{ProductID: "missing", Quantity: 1, Price: decimal.NewFromFloat(9.99)}},
				DeliveryAddress: "x", CustomerEmail: "a@b.test",
			},
			kind: errs.KindNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Place(ctx, tc.actor, tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.kind, errs.KindOf(err))
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "rejected orders must leave no rows behind")
	assert.Zero(t, f.mailer.count())
}

func TestPlaceOrderUsesSubmittedPrices(t *testing.T) {
	f := newOrderServiceFixture(t)

	// The stored catalog price is 9.99; the submitted line price wins.
	order, err := f.service.Place(context.Background(), f.buyer, PlaceOrderInput{
		Items: []OrderLineInput{
			{ProductID: f.hammer.ID, Quantity: 3, Price: decimal.NewFromFloat(7.00)},
		},
		DeliveryAddress: "1 Main St",
		CustomerEmail:   "buyer@acme.test",
	})
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.NewFromFloat(21.00)), "total was %s", order.Total)
	assert.True(t, order.OrderItems[0].Price.Equal(decimal.NewFromFloat(7.00)))
}

func TestOrderSnapshotSurvivesCatalogChanges(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t)

	f.hammer.Name = "Sledgehammer"
	f.hammer.Price = decimal.NewFromFloat(99.99)
	require.NoError(t, f.db.Save(f.hammer).Error)

	reloaded, err := f.service.Get(ctx, f.buyer, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.OrderItems, 1)
	assert.Equal(t, "Hammer", reloaded.OrderItems[0].ProductName)
	assert.True(t, reloaded.OrderItems[0].Price.Equal(decimal.NewFromFloat(9.99)))
	assert.True(t, reloaded.Total.Equal(decimal.NewFromFloat(19.98)))
}

func TestUpdateStatus(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t)
	require.Eventually(t, func() bool { return f.mailer.count() == 1 }, time.Second, 10*time.Millisecond)

	updated, err := f.service.UpdateStatus(ctx, f.admin, order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.True(t, updated.Total.Equal(order.Total), "status change must not touch the total")

	require.Eventually(t, func() bool { return f.mailer.count() == 2 }, time.Second, 10*time.Millisecond)
	mail := f.mailer.last()
	assert.Contains(t, mail.Subject, "SHIPPED")
	assert.Contains(t, mail.Body, StatusMessage(models.OrderStatusShipped))
}

func TestUpdateStatusAuthorization(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t)

	_, err := f.service.UpdateStatus(ctx, f.buyer, order.ID, models.OrderStatusShipped)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	_, err = f.service.UpdateStatus(ctx, f.admin, order.ID, "LOST_IN_TRANSIT")
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = f.service.UpdateStatus(ctx, f.admin, "missing", models.OrderStatusShipped)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestUpdateStatusSkipsOptedOutOrders(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t)
	require.Eventually(t, func() bool { return f.mailer.count() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("email_notification", false).Error)

	_, err := f.service.UpdateStatus(ctx, f.admin, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, f.mailer.count(), "opted-out order must not trigger mail")
}

func TestUpdateStatusSurvivesMailFailure(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t)

	f.mailer.mu.Lock()
	f.mailer.sendErr = assert.AnError
	f.mailer.mu.Unlock()

	updated, err := f.service.UpdateStatus(ctx, f.admin, order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
}

func TestListForActor(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	f.placeOrder(t)
	f.placeOrder(t)

	other := &models.User{Username: "rival", Password: "secret"}
	require.NoError(t, repositories.NewUserRepository(f.db).Create(ctx, f.db, other))
	otherActor := models.Actor{ID: other.ID, Username: other.Username, Role: other.Role}

	mine, err := f.service.ListForActor(ctx, f.buyer)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := f.service.ListForActor(ctx, otherActor)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	all, err := f.service.ListForActor(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetOrderOwnership(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	order := f.placeOrder(t)

	other := &models.User{Username: "rival", Password: "secret"}
	require.NoError(t, repositories.NewUserRepository(f.db).Create(ctx, f.db, other))
	otherActor := models.Actor{ID: other.ID, Username: other.Username, Role: other.Role}

	_, err := f.service.Get(ctx, otherActor, order.ID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	got, err := f.service.Get(ctx, f.admin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestClearAll(t *testing.T) {
	f := newOrderServiceFixture(t)
	ctx := context.Background()

	f.placeOrder(t)

	err := f.service.ClearAll(ctx, f.buyer)
	assert.Equal(t, errs.KindUnauthorized, errs.KindOf(err))

	require.NoError(t, f.service.ClearAll(ctx, f.admin))

	var orders, items int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestOrderRef(t *testing.T) {
	order := models.Order{ID: "abcdef12-3456-7890-abcd-ef1234567890"}
	assert.Equal(t, "abcdef12", order.Ref())
	assert.True(t, strings.HasPrefix(order.ID, order.Ref()))
}
