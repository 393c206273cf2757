package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
	"gorm.io/gorm"
)

type OrderLineInput struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type PlaceOrderInput struct {
	Items           []OrderLineInput `json:"items"`
	DeliveryAddress string           `json:"delivery_address"`
	PONumber        string           `json:"po_number"`
	CustomerEmail   string           `json:"customer_email"`
}

type OrderService struct {
	db            *gorm.DB
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	productRepo   repositories.ProductRepositoryImpl
	mailer        MailSender
	validate      *validator.Validate
	storeName     string
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepositoryImpl,
	mailer MailSender,
	validate *validator.Validate,
	storeName string,
) *OrderService {
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		mailer:        mailer,
		validate:      validate,
		storeName:     storeName,
	}
}

// Place validates the submitted cart and persists the order together with its
// line items in one transaction. The total is computed from the submitted
// line prices, snapshotted for good. The confirmation email is dispatched in
// the background after the write commits; a dispatch failure never fails the
// order.
func (s *OrderService) Place(ctx context.Context, actor models.Actor, input PlaceOrderInput) (*models.Order, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}

	if len(input.Items) == 0 {
		return nil, errs.Validation("order must have items")
	}

	deliveryAddress := strings.TrimSpace(input.DeliveryAddress)
	if deliveryAddress == "" {
		return nil, errs.Validation("delivery address is required")
	}

	customerEmail := strings.TrimSpace(input.CustomerEmail)
	if err := s.validate.Var(customerEmail, "required,email"); err != nil {
		return nil, errs.Validation("a valid email address is required")
	}

	total := decimal.Zero
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, errs.Validation("item quantity must be positive")
		}
		if line.Price.IsNegative() {
			return nil, errs.Validation("item price must not be negative")
		}
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, errs.Internal(fmt.Errorf("failed to load product %s: %w", line.ProductID, err))
		}
		if product == nil {
			return nil, errs.Newf(errs.KindNotFound, "product %s not found", line.ProductID)
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}

	order := &models.Order{
		UserID:            actor.ID,
		Total:             total,
		Status:            models.OrderStatusPending,
		DeliveryAddress:   deliveryAddress,
		PONumber:          strings.TrimSpace(input.PONumber),
		CustomerEmail:     customerEmail,
		EmailNotification: true,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, errs.Internal(fmt.Errorf("failed to begin transaction: %w", tx.Error))
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC: rolling back order transaction: %v", r)
			tx.Rollback()
		}
	}()

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		tx.Rollback()
		return nil, errs.Internal(fmt.Errorf("failed to create order: %w", err))
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
		tx.Rollback()
		return nil, errs.Internal(fmt.Errorf("failed to create order items: %w", err))
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to commit order transaction: %w", err))
	}

	order.OrderItems = orderItems

	go s.dispatchConfirmation(*order, actor.Username)

	return order, nil
}

// UpdateStatus overwrites the order status with any value from the fixed
// enumeration. The total and items are never touched. When the order carries
// a contact email and has notifications enabled, a status-update email is
// dispatched in the background.
func (s *OrderService) UpdateStatus(ctx context.Context, actor models.Actor, orderID, status string) (*models.Order, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can update order status")
	}

	if !models.ValidOrderStatus(status) {
		return nil, errs.Newf(errs.KindValidation, "invalid status %q", status)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to load order %s: %w", orderID, err))
	}
	if order == nil {
		return nil, errs.NotFound("order not found")
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to update order %s status: %w", orderID, err))
	}
	order.Status = status

	if order.CustomerEmail != "" && order.EmailNotification {
		go s.dispatchStatusUpdate(*order, order.User.Username, status)
	}

	return order, nil
}

// ListForActor returns all orders for admins and the actor's own orders for
// everyone else.
func (s *OrderService) ListForActor(ctx context.Context, actor models.Actor) ([]models.Order, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}

	if actor.IsAdmin() {
		orders, err := s.orderRepo.GetAllOrders(ctx)
		if err != nil {
			return nil, errs.Internal(fmt.Errorf("failed to list orders: %w", err))
		}
		return orders, nil
	}

	orders, err := s.orderRepo.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to list orders for user %s: %w", actor.ID, err))
	}
	return orders, nil
}

// Get returns one order; non-admin actors may only fetch their own.
func (s *OrderService) Get(ctx context.Context, actor models.Actor, orderID string) (*models.Order, error) {
	if actor.IsAnonymous() {
		return nil, errs.Unauthenticated("login required")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to load order %s: %w", orderID, err))
	}
	if order == nil || (!actor.IsAdmin() && order.UserID != actor.ID) {
		return nil, errs.NotFound("order not found")
	}
	return order, nil
}

// ClearAll wipes every order and order item. Admin only.
func (s *OrderService) ClearAll(ctx context.Context, actor models.Actor) error {
	if !actor.IsAdmin() {
		return errs.Unauthorized("only admins can clear orders")
	}
	if err := s.orderRepo.DeleteAll(ctx); err != nil {
		return errs.Internal(fmt.Errorf("failed to clear orders: %w", err))
	}
	return nil
}

func (s *OrderService) dispatchConfirmation(order models.Order, buyerName string) {
	subject := fmt.Sprintf("Order Confirmation - #%s", order.Ref())
	body := BuildOrderConfirmationBody(s.storeName, &order, buyerName)
	if err := s.mailer.SendHTMLEmail(order.CustomerEmail, subject, body); err != nil {
		log.Printf("[mail] order %s: confirmation email failed: %v", order.ID, err)
	}
}

func (s *OrderService) dispatchStatusUpdate(order models.Order, buyerName, newStatus string) {
	subject := fmt.Sprintf("Order #%s - %s %s", order.Ref(), newStatus, StatusEmoji(newStatus))
	body := BuildStatusUpdateBody(s.storeName, &order, buyerName, newStatus)
	if err := s.mailer.SendHTMLEmail(order.CustomerEmail, subject, body); err != nil {
		log.Printf("[mail] order %s: status update email failed: %v", order.ID, err)
	}
}
