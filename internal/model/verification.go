package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationStatus is the staff-facing state of an order verification.
type VerificationStatus string

const (
	VerificationStatusPending   VerificationStatus = "pending"
	VerificationStatusVerified  VerificationStatus = "verified"
	VerificationStatusCancelled VerificationStatus = "cancelled"
)

// OrderVerification is the staff-facing confirmation record created alongside
// every order. It is kept separate from the analytics Order for backward
// compatibility and carries the truncated HMAC signature whose prefix is the
// customer-visible verification code.
type OrderVerification struct {
	ID             int64              `json:"id" db:"id"`
	OrderID        string             `json:"orderId" db:"order_id"`
	TotalAmount    decimal.Decimal    `json:"totalAmount" db:"total_amount"`
	Signature      string             `json:"-" db:"signature"`
	Status         VerificationStatus `json:"status" db:"status"`
	CustomerName   *string            `json:"customerName,omitempty" db:"customer_name"`
	CustomerPhone  *string            `json:"customerPhone,omitempty" db:"customer_phone"`
	CouponCode     *string            `json:"couponCode,omitempty" db:"coupon_code"`
	DiscountAmount decimal.Decimal    `json:"discountAmount" db:"discount_amount"`
	Notes          *string            `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" db:"updated_at"`
}

// VerificationUpdate carries the whitelisted fields staff may change on a
// verification record. Nil fields are left untouched.
type VerificationUpdate struct {
	Status         *VerificationStatus `json:"status,omitempty"`
	CustomerName   *string             `json:"customerName,omitempty"`
	CustomerPhone  *string             `json:"customerPhone,omitempty"`
	CouponCode     *string             `json:"couponCode,omitempty"`
	DiscountAmount *decimal.Decimal    `json:"discountAmount,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u VerificationUpdate) IsEmpty() bool {
	return u.Status == nil &&
		u.CustomerName == nil &&
		u.CustomerPhone == nil &&
		u.CouponCode == nil &&
		u.DiscountAmount == nil &&
		u.Notes == nil
}

// VerificationFilter narrows verification listings.
type VerificationFilter struct {
	Status        VerificationStatus
	CustomerPhone string
	Limit         int
}
