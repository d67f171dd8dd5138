package service

import (
	"context"

	"morishcart/internal/coupon"
	"morishcart/internal/model"

	"github.com/shopspring/decimal"
)

// ProductService defines operations for the product catalogue.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// OrderService defines operations for order capture and lifecycle.
type OrderService interface {
	// CreateOrder revalidates the submitted cart against the catalogue,
	// applies the coupon server-side, signs the order, and persists order,
	// items and verification record in one transaction. Identical carts
	// re-submitted within the dedup window return the existing order
	// flagged as a duplicate.
	CreateOrder(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResult, error)

	// GetByID retrieves an order with its line items.
	GetByID(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error)

	// UpdateStatus transitions an order between initiated, confirmed and
	// cancelled.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// CouponService defines coupon validation and admin management operations.
type CouponService interface {
	// Validate checks a code against the stored rules for the given order
	// total.
	Validate(ctx context.Context, code string, total decimal.Decimal) (coupon.Result, error)

	// GetAll retrieves all coupons for the admin listing.
	GetAll(ctx context.Context) ([]model.Coupon, error)

	// Create registers a new coupon.
	Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error)

	// UpdateStatus enables or disables a coupon.
	UpdateStatus(ctx context.Context, id int64, isActive bool) error

	// Delete removes a coupon.
	Delete(ctx context.Context, id int64) error
}

// VerificationService defines the staff-facing verification operations.
type VerificationService interface {
	// GetByOrderID retrieves a verification record.
	GetByOrderID(ctx context.Context, orderID string) (*model.OrderVerification, error)

	// List retrieves verification records narrowed by the filter.
	List(ctx context.Context, filter model.VerificationFilter) ([]model.OrderVerification, error)

	// Update applies the whitelisted field set to a verification record.
	Update(ctx context.Context, orderID string, update model.VerificationUpdate) error

	// ClearCustomerInfo nulls the customer name and phone only.
	ClearCustomerInfo(ctx context.Context, orderID string) error
}

// AnalyticsService computes the admin dashboard summary.
type AnalyticsService interface {
	Summary(ctx context.Context) (*model.AnalyticsSummary, error)
}
