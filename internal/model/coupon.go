package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponType distinguishes how a coupon's value is applied.
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

// Coupon represents a discount code managed by admins. Codes are stored
// uppercase and matched case-insensitively.
type Coupon struct {
	ID             int64           `json:"id" db:"id"`
	Code           string          `json:"code" db:"code"`
	Type           CouponType      `json:"type" db:"type"`
	Value          decimal.Decimal `json:"value" db:"value"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount" db:"min_order_amount"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty" db:"expires_at"`
	IsActive       bool            `json:"isActive" db:"is_active"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
}

// CouponRequest represents the admin payload for creating a coupon.
type CouponRequest struct {
	Code           string          `json:"code"`
	Type           CouponType      `json:"type"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
}
