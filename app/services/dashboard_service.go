package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/signworks/go-orderportal/app/errs"
	"github.com/signworks/go-orderportal/app/models"
	"github.com/signworks/go-orderportal/app/repositories"
)

type DashboardStats struct {
	TotalProducts   int64           `json:"total_products"`
	TotalUsers      int64           `json:"total_users"`
	TotalOrders     int64           `json:"total_orders"`
	TotalCategories int64           `json:"total_categories"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	RecentOrders    []models.Order  `json:"recent_orders"`
}

type DashboardService struct {
	productRepo  repositories.ProductRepositoryImpl
	userRepo     repositories.UserRepositoryImpl
	orderRepo    repositories.OrderRepository
	categoryRepo repositories.CategoryRepositoryImpl
}

func NewDashboardService(
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	orderRepo repositories.OrderRepository,
	categoryRepo repositories.CategoryRepositoryImpl,
) *DashboardService {
	return &DashboardService{
		productRepo:  productRepo,
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		categoryRepo: categoryRepo,
	}
}

// Stats aggregates the admin dashboard numbers. Revenue excludes cancelled
// orders.
func (s *DashboardService) Stats(ctx context.Context, actor models.Actor) (*DashboardStats, error) {
	if !actor.IsAdmin() {
		return nil, errs.Unauthorized("only admins can view the dashboard")
	}

	totalProducts, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to count products: %w", err))
	}
	totalUsers, err := s.userRepo.CountByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to count users: %w", err))
	}
	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to count orders: %w", err))
	}
	totalCategories, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to count categories: %w", err))
	}
	totalRevenue, err := s.orderRepo.SumTotalsExcludingStatus(ctx, models.OrderStatusCancelled)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to sum revenue: %w", err))
	}
	recentOrders, err := s.orderRepo.Recent(ctx, 10)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("failed to load recent orders: %w", err))
	}

	return &DashboardStats{
		TotalProducts:   totalProducts,
		TotalUsers:      totalUsers,
		TotalOrders:     totalOrders,
		TotalCategories: totalCategories,
		TotalRevenue:    totalRevenue,
		RecentOrders:    recentOrders,
	}, nil
}
