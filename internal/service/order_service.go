package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"morishcart/internal/cart"
	"morishcart/internal/coupon"
	"morishcart/internal/model"
	"morishcart/internal/repository"
	"morishcart/internal/signer"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// minTotal is the smallest total an order may carry.
var minTotal = decimal.New(1, -2) // 0.01

// OrderConfig holds the order-capture guardrails.
type OrderConfig struct {
	MaxQuantity int
	DedupWindow time.Duration
}

// orderService implements OrderService.
type orderService struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	verificationRepo repository.VerificationRepository
	validator        coupon.Validator
	signer           *signer.Signer
	cfg              OrderConfig
	logger           zerolog.Logger
	now              func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	verificationRepo repository.VerificationRepository,
	validator coupon.Validator,
	sgn *signer.Signer,
	cfg OrderConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		verificationRepo: verificationRepo,
		validator:        validator,
		signer:           sgn,
		cfg:              cfg,
		logger:           logger.With().Str("service", "order").Logger(),
		now:              time.Now,
	}
}

// CreateOrder captures a cart submission end to end: duplicate check,
// server-side pricing, coupon re-application, signing and transactional
// persistence of order, items and verification record.
func (s *orderService) CreateOrder(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	cartHash := cart.Fingerprint(req.Items)

	// Fast path: identical cart already captured within the dedup window.
	duplicate, err := s.findDuplicate(ctx, cartHash, now)
	if err != nil {
		return nil, err
	}
	if duplicate != nil {
		s.logger.Info().
			Str("order_id", duplicate.OrderID).
			Str("cart_hash", cartHash).
			Msg("duplicate cart submission short-circuited")
		return duplicate, nil
	}

	items, subtotal, err := s.priceCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// Re-apply the coupon server-side; the client-quoted discount is
	// advisory only. An invalid coupon yields zero discount rather than
	// blocking the order.
	discount := decimal.Zero
	var couponCode *string
	if req.CouponCode != "" {
		result, err := s.validator.Validate(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, fmt.Errorf("failed to validate coupon: %w", err)
		}
		if result.Valid {
			discount = *result.Discount
			code := result.Coupon.Code
			couponCode = &code
		} else {
			s.logger.Warn().
				Str("coupon_code", req.CouponCode).
				Str("reason", result.Message).
				Msg("coupon rejected at checkout, proceeding without discount")
		}
	}

	total := subtotal.Sub(discount)
	if total.LessThan(minTotal) {
		discount = subtotal.Sub(minTotal)
		total = minTotal
	}

	orderID, err := s.signer.NewOrderID()
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	signature := s.signer.Sign(orderID, total)
	verificationCode := signer.VerificationCode(signature)

	order := &model.Order{
		OrderID:     orderID,
		CartHash:    cartHash,
		DedupBucket: cart.DedupBucket(now, s.cfg.DedupWindow),
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       total,
		CouponCode:  couponCode,
		Status:      model.OrderStatusInitiated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = orderID
	}

	verification := &model.OrderVerification{
		OrderID:        orderID,
		TotalAmount:    total,
		Signature:      signature,
		CouponCode:     couponCode,
		DiscountAmount: discount,
	}

	result, err := s.persistOrder(ctx, order, items, verification)
	if err != nil {
		// A concurrent identical submission won the insert race; return
		// the winning order instead of failing the request.
		if errors.Is(err, model.ErrDuplicateOrder) {
			duplicate, findErr := s.findDuplicate(ctx, cartHash, s.now())
			if findErr != nil {
				return nil, findErr
			}
			if duplicate != nil {
				return duplicate, nil
			}
			return nil, fmt.Errorf("failed to resolve duplicate order: %w", err)
		}
		return nil, err
	}
	result.VerificationCode = verificationCode

	s.logger.Info().
		Str("order_id", orderID).
		Int("item_count", len(items)).
		Str("subtotal", subtotal.StringFixed(2)).
		Str("discount", discount.StringFixed(2)).
		Str("total", total.StringFixed(2)).
		Msg("order created successfully")

	return result, nil
}

// persistOrder writes order, items and verification record as one
// transaction. Either all three land or none do.
func (s *orderService) persistOrder(
	ctx context.Context,
	order *model.Order,
	items []model.OrderItem,
	verification *model.OrderVerification,
) (*model.CheckoutResult, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		if errors.Is(err, model.ErrDuplicateOrder) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.OrderID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = s.verificationRepo.Create(ctx, tx, verification); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.OrderID).
			Msg("failed to create order verification")
		return nil, fmt.Errorf("failed to create order verification: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &model.CheckoutResult{
		OrderID:     order.OrderID,
		TotalAmount: order.Total,
	}, nil
}

// findDuplicate looks for an order with the same cart fingerprint inside the
// dedup window and reconstructs its checkout result.
func (s *orderService) findDuplicate(ctx context.Context, cartHash string, now time.Time) (*model.CheckoutResult, error) {
	existing, err := s.orderRepo.FindRecentByCartHash(ctx, cartHash, now.Add(-s.cfg.DedupWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate order: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	verificationCode := ""
	verification, err := s.verificationRepo.GetByOrderID(ctx, existing.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load verification for duplicate order: %w", err)
	}
	if verification != nil {
		verificationCode = signer.VerificationCode(verification.Signature)
	}

	return &model.CheckoutResult{
		OrderID:          existing.OrderID,
		VerificationCode: verificationCode,
		TotalAmount:      existing.Total,
		Duplicate:        true,
	}, nil
}

// priceCart resolves every line against the catalogue and computes the
// subtotal. Prices always come from the store, never from the client. Any
// unknown product aborts the whole order.
func (s *orderService) priceCart(ctx context.Context, cartItems []model.CartItem) ([]model.OrderItem, decimal.Decimal, error) {
	ids := make([]string, len(cartItems))
	for i, item := range cartItems {
		ids[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to resolve products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]model.OrderItem, 0, len(cartItems))
	subtotal := decimal.Zero

	for _, line := range cartItems {
		product, ok := byID[line.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", line.ProductID).Msg("unknown product in cart")
			return nil, decimal.Zero, model.NewDomainError(
				model.ErrCodeProductNotFound,
				fmt.Sprintf("Product %s not found", line.ProductID),
			)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)

		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
			ProductName: product.Name,
			Category:    product.Category,
		})
	}

	return items, subtotal, nil
}

// validateRequest rejects malformed carts before any database work.
func (s *orderService) validateRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Request body is required")
	}

	if len(req.Items) == 0 {
		return model.ErrEmptyCart
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return model.NewDomainError(
				model.ErrCodeProductNotFound,
				fmt.Sprintf("Item %d: product ID is required", i),
			)
		}

		if item.Quantity < 1 || item.Quantity > s.cfg.MaxQuantity {
			s.logger.Warn().
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Int("max_quantity", s.cfg.MaxQuantity).
				Msg("invalid quantity")
			return model.NewDomainError(
				model.ErrCodeInvalidQuantity,
				fmt.Sprintf("Quantity for product %s must be between 1 and %d", item.ProductID, s.cfg.MaxQuantity),
			)
		}
	}

	return nil
}

// GetByID retrieves an order with its line items.
func (s *orderService) GetByID(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error) {
	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil, model.ErrOrderNotFound
	}
	return order, items, nil
}

// UpdateStatus transitions an order between initiated, confirmed and cancelled.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	switch status {
	case model.OrderStatusInitiated, model.OrderStatusConfirmed, model.OrderStatusCancelled:
	default:
		return model.ErrInvalidStatus
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}
