package repository

import (
	"context"
	"fmt"
	"strings"

	"morishcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// verificationRepository implements VerificationRepository using PostgreSQL.
type verificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVerificationRepository creates a new PostgreSQL-backed verification repository.
func NewVerificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) VerificationRepository {
	return &verificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "verification").Logger(),
	}
}

// Create inserts a verification record within the provided transaction.
func (r *verificationRepository) Create(ctx context.Context, tx pgx.Tx, v *model.OrderVerification) error {
	query := `
		INSERT INTO order_verifications
			(order_id, total_amount, signature, status, coupon_code, discount_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		v.OrderID,
		v.TotalAmount,
		v.Signature,
		model.VerificationStatusPending,
		v.CouponCode,
		v.DiscountAmount,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", v.OrderID).
			Msg("failed to create order verification")
		return fmt.Errorf("failed to create order verification: %w", err)
	}

	v.Status = model.VerificationStatusPending

	r.logger.Debug().
		Str("order_id", v.OrderID).
		Msg("order verification created")

	return nil
}

// GetByOrderID retrieves a verification record by its order id.
func (r *verificationRepository) GetByOrderID(ctx context.Context, orderID string) (*model.OrderVerification, error) {
	query := `
		SELECT id, order_id, total_amount, signature, status, customer_name,
		       customer_phone, coupon_code, discount_amount, notes, created_at, updated_at
		FROM order_verifications
		WHERE order_id = $1
	`

	var v model.OrderVerification
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&v.ID,
		&v.OrderID,
		&v.TotalAmount,
		&v.Signature,
		&v.Status,
		&v.CustomerName,
		&v.CustomerPhone,
		&v.CouponCode,
		&v.DiscountAmount,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", orderID).Msg("order verification not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order verification")
		return nil, fmt.Errorf("failed to query order verification: %w", err)
	}

	return &v, nil
}

// List retrieves verification records newest first, narrowed by the filter.
func (r *verificationRepository) List(ctx context.Context, filter model.VerificationFilter) ([]model.OrderVerification, error) {
	query := `
		SELECT id, order_id, total_amount, signature, status, customer_name,
		       customer_phone, coupon_code, discount_amount, notes, created_at, updated_at
		FROM order_verifications
		WHERE 1=1
	`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filter.CustomerPhone != "" {
		args = append(args, filter.CustomerPhone)
		query += fmt.Sprintf(" AND customer_phone = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order verifications")
		return nil, fmt.Errorf("failed to query order verifications: %w", err)
	}
	defer rows.Close()

	var verifications []model.OrderVerification
	for rows.Next() {
		var v model.OrderVerification
		err := rows.Scan(
			&v.ID,
			&v.OrderID,
			&v.TotalAmount,
			&v.Signature,
			&v.Status,
			&v.CustomerName,
			&v.CustomerPhone,
			&v.CouponCode,
			&v.DiscountAmount,
			&v.Notes,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order verification row")
			return nil, fmt.Errorf("failed to scan order verification: %w", err)
		}
		verifications = append(verifications, v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order verification rows")
		return nil, fmt.Errorf("error iterating order verifications: %w", err)
	}

	return verifications, nil
}

// Update applies the whitelisted field set to a verification record. Nil
// fields are skipped; an empty update is rejected.
func (r *verificationRepository) Update(ctx context.Context, orderID string, update model.VerificationUpdate) error {
	if update.IsEmpty() {
		return model.ErrNoFieldsToUpdate
	}

	var sets []string
	var args []any

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		addSet("status", *update.Status)
	}
	if update.CustomerName != nil {
		addSet("customer_name", strings.TrimSpace(*update.CustomerName))
	}
	if update.CustomerPhone != nil {
		addSet("customer_phone", strings.TrimSpace(*update.CustomerPhone))
	}
	if update.CouponCode != nil {
		addSet("coupon_code", *update.CouponCode)
	}
	if update.DiscountAmount != nil {
		addSet("discount_amount", *update.DiscountAmount)
	}
	if update.Notes != nil {
		addSet("notes", strings.TrimSpace(*update.Notes))
	}

	sets = append(sets, "updated_at = NOW()")

	args = append(args, orderID)
	query := fmt.Sprintf(
		"UPDATE order_verifications SET %s WHERE order_id = $%d",
		strings.Join(sets, ", "),
		len(args),
	)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to update order verification")
		return fmt.Errorf("failed to update order verification: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Info().
		Str("order_id", orderID).
		Int("fields", len(sets)-1).
		Msg("order verification updated")

	return nil
}

// ClearCustomerInfo nulls the customer name and phone only.
func (r *verificationRepository) ClearCustomerInfo(ctx context.Context, orderID string) error {
	query := `
		UPDATE order_verifications
		SET customer_name = NULL, customer_phone = NULL, updated_at = NOW()
		WHERE order_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to clear customer info")
		return fmt.Errorf("failed to clear customer info: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Info().Str("order_id", orderID).Msg("customer info cleared")

	return nil
}
