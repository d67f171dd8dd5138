package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10, 2) NOT NULL,
			category VARCHAR(100) NOT NULL,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS coupons (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			type VARCHAR(20) NOT NULL CHECK (type IN ('percentage', 'fixed')),
			value DECIMAL(10, 2) NOT NULL,
			min_order_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			expires_at TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			order_id VARCHAR(12) PRIMARY KEY,
			cart_hash CHAR(64) NOT NULL,
			dedup_bucket BIGINT NOT NULL,
			subtotal DECIMAL(10, 2) NOT NULL,
			discount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			total DECIMAL(10, 2) NOT NULL CHECK (total > 0),
			coupon_code VARCHAR(50),
			status VARCHAR(20) NOT NULL DEFAULT 'initiated'
				CHECK (status IN ('initiated', 'confirmed', 'cancelled')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (cart_hash, dedup_bucket)
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id VARCHAR(12) NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(10, 2) NOT NULL,
			line_total DECIMAL(10, 2) NOT NULL,
			product_name_snapshot VARCHAR(255) NOT NULL,
			category_snapshot VARCHAR(100) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_verifications (
			id BIGSERIAL PRIMARY KEY,
			order_id VARCHAR(12) NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
			total_amount DECIMAL(10, 2) NOT NULL,
			signature VARCHAR(16) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'verified', 'cancelled')),
			customer_name VARCHAR(255),
			customer_phone VARCHAR(50),
			coupon_code VARCHAR(50),
			discount_amount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_orders_cart_hash ON orders(cart_hash, created_at);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_order_verifications_order_id ON order_verifications(order_id);
		CREATE INDEX IF NOT EXISTS idx_order_verifications_status ON order_verifications(status);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		name     string
		price    string
		category string
	}{
		{"P001", "Honey Cake", "10.00", "Cakes"},
		{"P002", "Date Bar", "20.00", "Bars"},
		{"P003", "Pistachio Roll", "30.00", "Rolls"},
		{"P004", "Walnut Baklava", "40.00", "Baklava"},
		{"P005", "Saffron Cookie Box", "50.00", "Cookies"},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, price, category) VALUES ($1, $2, $3, $4)",
			p.id, p.name, p.price, p.category,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// SeedCoupons inserts test coupon data into the database.
func SeedCoupons(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	coupons := []struct {
		code     string
		kind     string
		value    string
		minOrder string
		expires  *time.Time
		active   bool
	}{
		{"SAVE20", "percentage", "20.00", "0", nil, true},
		{"FLAT10", "fixed", "10.00", "50.00", nil, true},
		{"EXPIRED1", "percentage", "15.00", "0", timePtr(time.Now().Add(-24 * time.Hour)), true},
		{"DISABLED1", "fixed", "5.00", "0", nil, false},
	}

	for _, c := range coupons {
		_, err := pool.Exec(ctx,
			`INSERT INTO coupons (code, type, value, min_order_amount, expires_at, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.code, c.kind, c.value, c.minOrder, c.expires, c.active,
		)
		if err != nil {
			t.Fatalf("failed to seed coupon %s: %v", c.code, err)
		}
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_verifications", "order_items", "orders", "coupons", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
