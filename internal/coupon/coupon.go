package coupon

import (
	"context"

	"morishcart/internal/model"

	"github.com/shopspring/decimal"
)

// Result is the outcome of validating a coupon against an order subtotal.
// An invalid coupon is not an error: the message explains the failure and
// the discount is zero.
type Result struct {
	Valid    bool             `json:"valid"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	Coupon   *model.Coupon    `json:"coupon,omitempty"`
	Message  string           `json:"message"`
}

// Validator defines the interface for coupon validation.
type Validator interface {
	// Validate checks a code against the stored coupon rules and computes
	// the discount for the given subtotal. The returned error covers
	// infrastructure failures only; rule violations come back as an
	// invalid Result.
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (Result, error)
}

// Source resolves coupon codes to stored coupons. Implementations return
// (nil, nil) when no active coupon matches the code.
type Source interface {
	GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error)
}
