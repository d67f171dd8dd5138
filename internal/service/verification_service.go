package service

import (
	"context"
	"fmt"
	"strings"

	"morishcart/internal/model"
	"morishcart/internal/repository"

	"github.com/rs/zerolog"
)

// verificationService implements VerificationService.
type verificationService struct {
	verificationRepo repository.VerificationRepository
	logger           zerolog.Logger
}

// NewVerificationService creates a new verification service.
func NewVerificationService(
	verificationRepo repository.VerificationRepository,
	logger zerolog.Logger,
) VerificationService {
	return &verificationService{
		verificationRepo: verificationRepo,
		logger:           logger.With().Str("service", "verification").Logger(),
	}
}

// GetByOrderID retrieves a verification record. Lookups are normalised the
// same way order ids are issued: trimmed and uppercased.
func (s *verificationService) GetByOrderID(ctx context.Context, orderID string) (*model.OrderVerification, error) {
	normalized := strings.ToUpper(strings.TrimSpace(orderID))
	if normalized == "" {
		return nil, model.ErrOrderNotFound
	}

	v, err := s.verificationRepo.GetByOrderID(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get order verification: %w", err)
	}
	if v == nil {
		return nil, model.ErrOrderNotFound
	}

	return v, nil
}

// List retrieves verification records narrowed by the filter.
func (s *verificationService) List(ctx context.Context, filter model.VerificationFilter) ([]model.OrderVerification, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	switch filter.Status {
	case "", model.VerificationStatusPending, model.VerificationStatusVerified, model.VerificationStatusCancelled:
	default:
		return nil, model.ErrInvalidStatus
	}

	verifications, err := s.verificationRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list order verifications: %w", err)
	}

	return verifications, nil
}

// Update applies the whitelisted field set to a verification record.
func (s *verificationService) Update(ctx context.Context, orderID string, update model.VerificationUpdate) error {
	if update.IsEmpty() {
		return model.ErrNoFieldsToUpdate
	}

	if update.Status != nil {
		switch *update.Status {
		case model.VerificationStatusPending, model.VerificationStatusVerified, model.VerificationStatusCancelled:
		default:
			return model.ErrInvalidStatus
		}
	}

	if err := s.verificationRepo.Update(ctx, strings.ToUpper(strings.TrimSpace(orderID)), update); err != nil {
		return err
	}

	s.logger.Info().Str("order_id", orderID).Msg("verification updated")

	return nil
}

// ClearCustomerInfo nulls the customer name and phone only.
func (s *verificationService) ClearCustomerInfo(ctx context.Context, orderID string) error {
	if err := s.verificationRepo.ClearCustomerInfo(ctx, strings.ToUpper(strings.TrimSpace(orderID))); err != nil {
		return err
	}

	s.logger.Info().Str("order_id", orderID).Msg("customer info cleared")

	return nil
}
