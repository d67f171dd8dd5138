package service

import (
	"context"
	"fmt"
	"strings"

	"morishcart/internal/coupon"
	"morishcart/internal/model"
	"morishcart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	validator  coupon.Validator
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(
	couponRepo repository.CouponRepository,
	validator coupon.Validator,
	logger zerolog.Logger,
) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		validator:  validator,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// Validate checks a code against the stored rules for the given order total.
func (s *couponService) Validate(ctx context.Context, code string, total decimal.Decimal) (coupon.Result, error) {
	if strings.TrimSpace(code) == "" {
		return coupon.Result{Valid: false, Message: "Code and total are required"}, nil
	}

	result, err := s.validator.Validate(ctx, code, total)
	if err != nil {
		s.logger.Error().Err(err).Str("coupon_code", code).Msg("coupon validation failed")
		return coupon.Result{}, fmt.Errorf("failed to validate coupon: %w", err)
	}

	return result, nil
}

// GetAll retrieves all coupons for the admin listing.
func (s *couponService) GetAll(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupons: %w", err)
	}
	return coupons, nil
}

// Create registers a new coupon.
func (s *couponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	if req == nil || strings.TrimSpace(req.Code) == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Code, type, and value are required")
	}

	if req.Type != model.CouponTypePercentage && req.Type != model.CouponTypeFixed {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Coupon type must be percentage or fixed")
	}

	if req.Value.LessThanOrEqual(decimal.Zero) {
		return nil, model.NewDomainError(model.ErrCodeInvalidJSON, "Coupon value must be greater than zero")
	}

	c := &model.Coupon{
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		ExpiresAt:      req.ExpiresAt,
	}

	if err := s.couponRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", c.Code).Str("type", string(c.Type)).Msg("coupon created")

	return c, nil
}

// UpdateStatus enables or disables a coupon.
func (s *couponService) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	if err := s.couponRepo.UpdateStatus(ctx, id, isActive); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Bool("is_active", isActive).Msg("coupon status updated")

	return nil
}

// Delete removes a coupon.
func (s *couponService) Delete(ctx context.Context, id int64) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Msg("coupon deleted")

	return nil
}
