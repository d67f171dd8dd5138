package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"morishcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// GetAll retrieves all coupons, newest first.
func (r *couponRepository) GetAll(ctx context.Context) ([]model.Coupon, error) {
	query := `
		SELECT id, code, type, value, min_order_amount, expires_at, is_active, created_at
		FROM coupons
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		err := rows.Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.MinOrderAmount, &c.ExpiresAt, &c.IsActive, &c.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}

// GetActiveByCode retrieves an active coupon by its code.
func (r *couponRepository) GetActiveByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `
		SELECT id, code, type, value, min_order_amount, expires_at, is_active, created_at
		FROM coupons
		WHERE code = $1 AND is_active
	`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(code)).Scan(
		&c.ID,
		&c.Code,
		&c.Type,
		&c.Value,
		&c.MinOrderAmount,
		&c.ExpiresAt,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("active coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// Create inserts a new coupon. The code is stored uppercase.
func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (code, type, value, min_order_amount, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, created_at
	`

	c.Code = strings.ToUpper(c.Code)
	err := r.pool.QueryRow(ctx, query, c.Code, c.Type, c.Value, c.MinOrderAmount, c.ExpiresAt).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Warn().Str("code", c.Code).Msg("coupon code already exists")
			return model.ErrCouponCodeExists
		}
		r.logger.Error().Err(err).Str("code", c.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	c.IsActive = true

	r.logger.Debug().Str("code", c.Code).Int64("id", c.ID).Msg("coupon created")

	return nil
}

// UpdateStatus toggles a coupon's active flag.
func (r *couponRepository) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	query := `UPDATE coupons SET is_active = $1 WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, isActive, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("id", id).Msg("failed to update coupon status")
		return fmt.Errorf("failed to update coupon status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	return nil
}

// Delete removes a coupon.
func (r *couponRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM coupons WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("id", id).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	return nil
}
