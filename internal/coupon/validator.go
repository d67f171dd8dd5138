package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"morishcart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	oneHundred = decimal.NewFromInt(100)

	// minRemainder is the smallest total an order may end up with after a
	// discount is applied. Discounts are clamped so the total stays above
	// zero.
	minRemainder = decimal.New(1, -2) // 0.01
)

// validator implements Validator against a coupon source.
type validator struct {
	source Source
	logger zerolog.Logger
	now    func() time.Time
}

// NewValidator creates a new rule-based coupon validator.
func NewValidator(source Source, logger zerolog.Logger) Validator {
	return &validator{
		source: source,
		logger: logger.With().Str("component", "coupon-validator").Logger(),
		now:    time.Now,
	}
}

// Validate checks a code against the stored coupon rules and computes the
// discount for the given subtotal. Codes are matched case-insensitively.
func (v *validator) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (Result, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	c, err := v.source.GetActiveByCode(ctx, normalized)
	if err != nil {
		return Result{}, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if c == nil {
		v.logger.Debug().Str("coupon_code", normalized).Msg("coupon not found or inactive")
		return Result{Valid: false, Message: "Invalid coupon code"}, nil
	}

	if c.ExpiresAt != nil && v.now().After(*c.ExpiresAt) {
		v.logger.Debug().
			Str("coupon_code", normalized).
			Time("expires_at", *c.ExpiresAt).
			Msg("coupon expired")
		return Result{Valid: false, Message: "Coupon has expired"}, nil
	}

	if subtotal.LessThan(c.MinOrderAmount) {
		return Result{
			Valid:   false,
			Message: fmt.Sprintf("Minimum order amount is $%s", c.MinOrderAmount.StringFixed(2)),
		}, nil
	}

	discount := computeDiscount(c, subtotal)

	v.logger.Debug().
		Str("coupon_code", normalized).
		Str("subtotal", subtotal.StringFixed(2)).
		Str("discount", discount.StringFixed(2)).
		Msg("coupon validated")

	return Result{
		Valid:    true,
		Discount: &discount,
		Coupon:   c,
		Message:  fmt.Sprintf("Coupon applied! You saved $%s", discount.StringFixed(2)),
	}, nil
}

// computeDiscount applies the coupon to the subtotal. The discount never
// exceeds the subtotal and always leaves a strictly positive total.
func computeDiscount(c *model.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	if c.Type == model.CouponTypePercentage {
		discount = subtotal.Mul(c.Value).Div(oneHundred)
	} else {
		discount = decimal.Min(c.Value, subtotal)
	}

	discount = discount.Round(2)

	if subtotal.Sub(discount).LessThanOrEqual(decimal.Zero) {
		discount = subtotal.Sub(minRemainder)
	}

	return discount
}
