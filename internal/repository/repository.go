package repository

import (
	"context"
	"time"

	"morishcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil)
	// when no product matches.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetAll retrieves all coupons, newest first.
	GetAll(ctx context.Context) ([]model.Coupon, error)

	// GetActiveByCode retrieves an active coupon by its uppercase code.
	// Returns (nil, nil) when no active coupon matches.
	GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error)

	// Create inserts a new coupon. Returns model.ErrCouponCodeExists on a
	// duplicate code.
	Create(ctx context.Context, c *model.Coupon) error

	// UpdateStatus toggles a coupon's active flag.
	UpdateStatus(ctx context.Context, id int64, isActive bool) error

	// Delete removes a coupon.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// FindRecentByCartHash returns the newest order with the given cart
	// fingerprint created at or after the cutoff, or (nil, nil) if none.
	FindRecentByCartHash(ctx context.Context, cartHash string, since time.Time) (*model.Order, error)

	// CreateOrder inserts a new order within the provided transaction.
	// Returns model.ErrDuplicateOrder when a concurrent submission of the
	// same cart already claimed the (cart_hash, dedup_bucket) slot.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns
	// (nil, nil, nil) when no order matches.
	GetByID(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error)

	// UpdateStatus transitions an order's lifecycle status.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// VerificationRepository defines the interface for staff-facing order
// verification records.
type VerificationRepository interface {
	// Create inserts a verification record within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, v *model.OrderVerification) error

	// GetByOrderID retrieves a verification record by its order id.
	// Returns (nil, nil) when no record matches.
	GetByOrderID(ctx context.Context, orderID string) (*model.OrderVerification, error)

	// List retrieves verification records newest first, narrowed by the
	// filter.
	List(ctx context.Context, filter model.VerificationFilter) ([]model.OrderVerification, error)

	// Update applies the whitelisted field set to a verification record.
	Update(ctx context.Context, orderID string, update model.VerificationUpdate) error

	// ClearCustomerInfo nulls the customer name and phone only.
	ClearCustomerInfo(ctx context.Context, orderID string) error
}

// AnalyticsRepository computes read-only aggregations over confirmed orders.
type AnalyticsRepository interface {
	TotalOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
	TopCoupons(ctx context.Context, limit int) ([]model.TopCoupon, error)
	ConversionRate(ctx context.Context) (model.ConversionRate, error)
}
