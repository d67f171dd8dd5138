package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an analytics order.
type OrderStatus string

const (
	OrderStatusInitiated OrderStatus = "initiated"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a captured order with its pricing breakdown. OrderID is a
// human-shareable uppercase identifier; CartHash is the canonical fingerprint
// of the submitted cart used for duplicate detection.
type Order struct {
	OrderID     string          `json:"orderId" db:"order_id"`
	CartHash    string          `json:"-" db:"cart_hash"`
	DedupBucket int64           `json:"-" db:"dedup_bucket"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`
	Discount    decimal.Decimal `json:"discount" db:"discount"`
	Total       decimal.Decimal `json:"total" db:"total"`
	CouponCode  *string         `json:"couponCode,omitempty" db:"coupon_code"`
	Status      OrderStatus     `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a priced line item with snapshots taken at order-creation
// time, so later catalogue edits never alter historical orders.
type OrderItem struct {
	ID          uuid.UUID       `json:"-" db:"id"`
	OrderID     string          `json:"-" db:"order_id"`
	ProductID   string          `json:"productId" db:"product_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	LineTotal   decimal.Decimal `json:"lineTotal" db:"line_total"`
	ProductName string          `json:"productName" db:"product_name_snapshot"`
	Category    string          `json:"category" db:"category_snapshot"`
}

// CartItem is a client-submitted line item. It never carries a price; the
// pricing engine re-resolves every product server-side.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the payload for POST /checkout/create. DiscountAmount
// is advisory only; the discount is always recomputed server-side.
type CheckoutRequest struct {
	Items          []CartItem       `json:"items"`
	CouponCode     string           `json:"couponCode,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discountAmount,omitempty"`
}

// CheckoutResult is the outcome of a successful order creation. Duplicate is
// set when an identical cart was already captured inside the dedup window.
type CheckoutResult struct {
	OrderID          string          `json:"orderId"`
	VerificationCode string          `json:"verificationCode"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Duplicate        bool            `json:"duplicate,omitempty"`
}
