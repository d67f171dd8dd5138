package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"morishcart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// FindRecentByCartHash returns the newest order with the given cart
// fingerprint created at or after the cutoff.
func (r *orderRepository) FindRecentByCartHash(ctx context.Context, cartHash string, since time.Time) (*model.Order, error) {
	query := `
		SELECT order_id, cart_hash, dedup_bucket, subtotal, discount, total,
		       coupon_code, status, created_at, updated_at
		FROM orders
		WHERE cart_hash = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var o model.Order
	err := r.pool.QueryRow(ctx, query, cartHash, since).Scan(
		&o.OrderID,
		&o.CartHash,
		&o.DedupBucket,
		&o.Subtotal,
		&o.Discount,
		&o.Total,
		&o.CouponCode,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_hash", cartHash).Msg("failed to query recent order by cart hash")
		return nil, fmt.Errorf("failed to query recent order: %w", err)
	}

	return &o, nil
}

// CreateOrder inserts a new order within the provided transaction. The
// unique (cart_hash, dedup_bucket) constraint backstops the check-then-insert
// race between concurrent identical submissions.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (order_id, cart_hash, dedup_bucket, subtotal, discount,
		                    total, coupon_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		order.OrderID,
		order.CartHash,
		order.DedupBucket,
		order.Subtotal,
		order.Discount,
		order.Total,
		order.CouponCode,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Info().
				Str("order_id", order.OrderID).
				Str("cart_hash", order.CartHash).
				Msg("concurrent duplicate submission lost the insert race")
			return model.ErrDuplicateOrder
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.OrderID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.OrderID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price,
		                         line_total, product_name_snapshot, category_snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
			item.ProductName,
			item.Category,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, []model.OrderItem, error) {
	orderQuery := `
		SELECT order_id, cart_hash, dedup_bucket, subtotal, discount, total,
		       coupon_code, status, created_at, updated_at
		FROM orders
		WHERE order_id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, orderQuery, orderID).Scan(
		&order.OrderID,
		&order.CartHash,
		&order.DedupBucket,
		&order.Subtotal,
		&order.Discount,
		&order.Total,
		&order.CouponCode,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", orderID).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, unit_price, line_total,
		       product_name_snapshot, category_snapshot
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID).
			Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
			&item.ProductName,
			&item.Category,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, items, nil
}

// UpdateStatus transitions an order's lifecycle status.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE order_id = $2`

	tag, err := r.pool.Exec(ctx, query, status, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Info().
		Str("order_id", orderID).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}
