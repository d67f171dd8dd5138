package repository

import (
	"context"
	"fmt"

	"morishcart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// analyticsRepository implements AnalyticsRepository using PostgreSQL.
// Every aggregation is computed over confirmed orders only and never
// mutates state.
type analyticsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAnalyticsRepository creates a new PostgreSQL-backed analytics repository.
func NewAnalyticsRepository(pool *pgxpool.Pool, logger zerolog.Logger) AnalyticsRepository {
	return &analyticsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "analytics").Logger(),
	}
}

// TotalOrders returns the number of confirmed orders.
func (r *analyticsRepository) TotalOrders(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = 'confirmed'`,
	).Scan(&total)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count confirmed orders")
		return 0, fmt.Errorf("failed to count confirmed orders: %w", err)
	}
	return total, nil
}

// TotalRevenue returns the summed total of confirmed orders.
func (r *analyticsRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = 'confirmed'`,
	).Scan(&revenue)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to sum confirmed revenue")
		return decimal.Zero, fmt.Errorf("failed to sum confirmed revenue: %w", err)
	}
	return revenue, nil
}

// TopProducts returns products ranked by confirmed quantity sold.
func (r *analyticsRepository) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	query := `
		SELECT oi.product_name_snapshot,
		       SUM(oi.quantity) AS total_sold,
		       SUM(oi.line_total) AS revenue
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.order_id
		WHERE o.status = 'confirmed'
		GROUP BY oi.product_id, oi.product_name_snapshot
		ORDER BY total_sold DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top products")
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var products []model.TopProduct
	for rows.Next() {
		var p model.TopProduct
		if err := rows.Scan(&p.Name, &p.TotalSold, &p.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top products: %w", err)
	}

	return products, nil
}

// TopCoupons returns coupons ranked by confirmed usage.
func (r *analyticsRepository) TopCoupons(ctx context.Context, limit int) ([]model.TopCoupon, error) {
	query := `
		SELECT coupon_code,
		       COUNT(*) AS usage_count,
		       SUM(discount) AS total_discount
		FROM orders
		WHERE status = 'confirmed' AND coupon_code IS NOT NULL
		GROUP BY coupon_code
		ORDER BY usage_count DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top coupons")
		return nil, fmt.Errorf("failed to query top coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.TopCoupon
	for rows.Next() {
		var c model.TopCoupon
		if err := rows.Scan(&c.CouponCode, &c.UsageCount, &c.TotalDiscount); err != nil {
			return nil, fmt.Errorf("failed to scan top coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top coupons: %w", err)
	}

	return coupons, nil
}

// ConversionRate returns the initiated-to-confirmed funnel summary.
func (r *analyticsRepository) ConversionRate(ctx context.Context) (model.ConversionRate, error) {
	query := `
		SELECT COUNT(*) AS total_initiated,
		       COALESCE(SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END), 0) AS total_confirmed
		FROM orders
	`

	var cr model.ConversionRate
	if err := r.pool.QueryRow(ctx, query).Scan(&cr.Initiated, &cr.Confirmed); err != nil {
		r.logger.Error().Err(err).Msg("failed to query conversion rate")
		return model.ConversionRate{}, fmt.Errorf("failed to query conversion rate: %w", err)
	}

	rate := 0.0
	if cr.Initiated > 0 {
		rate = float64(cr.Confirmed) / float64(cr.Initiated) * 100
	}
	cr.Rate = fmt.Sprintf("%.2f", rate)

	return cr, nil
}
