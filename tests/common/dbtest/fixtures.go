//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestAddress(t *testing.T, db DBLike, userID uuid.UUID, country, state, postalCode string) uuid.UUID {
	t.Helper()

	addressID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO addresses (id, user_id, country, state, city, line1, postal_code) VALUES ($1, $2, $3, $4, 'Testville', '1 Test St', $5)",
		addressID, userID, country, state, postalCode)
	require.NoError(t, err)

	return addressID
}

func CreateTestProduct(t *testing.T, db DBLike, name string, priceCents int64, stock int32) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, price_cents, stock, weight_kg) VALUES ($1, $2, $3, $4, 0.5)",
		productID, name, priceCents, stock)
	require.NoError(t, err)

	return productID
}

func CreateTestProductWithThreshold(t *testing.T, db DBLike, name string, priceCents int64, stock int32, thresholdCents int64) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO products (id, name, price_cents, stock, weight_kg, free_shipping_threshold_cents) VALUES ($1, $2, $3, $4, 0.5, $5)",
		productID, name, priceCents, stock, thresholdCents)
	require.NoError(t, err)

	return productID
}

func CreateTestShippingMethod(t *testing.T, db DBLike, name, tier string, defaultCostCents int64, active bool) uuid.UUID {
	t.Helper()

	methodID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO shipping_methods (id, name, tier, default_cost_cents, is_active) VALUES ($1, $2, $3, $4, $5)",
		methodID, name, tier, defaultCostCents, active)
	require.NoError(t, err)

	return methodID
}

func CreateTestShippingRate(t *testing.T, db DBLike, methodID uuid.UUID, country string, state *string, costCents int64) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO shipping_rates (shipping_method_id, country, state, cost_cents) VALUES ($1, $2, $3, $4)",
		methodID, country, state, costCents)
	require.NoError(t, err)
}

func CreateTestCoupon(t *testing.T, db DBLike, code, discountType, value string, usageLimit *int32) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	now := time.Now()
	_, err := db.Exec(context.Background(),
		"INSERT INTO coupons (id, code, discount_type, discount_value, valid_from, valid_until, usage_limit) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		couponID, code, discountType, value, now.Add(-24*time.Hour), now.Add(24*time.Hour), usageLimit)
	require.NoError(t, err)

	return couponID
}

func CreateExpiredCoupon(t *testing.T, db DBLike, code, discountType, value string) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	now := time.Now()
	_, err := db.Exec(context.Background(),
		"INSERT INTO coupons (id, code, discount_type, discount_value, valid_from, valid_until) VALUES ($1, $2, $3, $4, $5, $6)",
		couponID, code, discountType, value, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
	require.NoError(t, err)

	return couponID
}

func AddCartItem(t *testing.T, db DBLike, userID, productID uuid.UUID, quantity int32) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3) ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = $3",
		userID, productID, quantity)
	require.NoError(t, err)
}

func GetProductStock(t *testing.T, db DBLike, productID uuid.UUID) int32 {
	t.Helper()

	var stock int32
	err := db.QueryRow(context.Background(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func GetCouponUsedCount(t *testing.T, db DBLike, couponID uuid.UUID) int32 {
	t.Helper()

	var count int32
	err := db.QueryRow(context.Background(), "SELECT used_count FROM coupons WHERE id = $1", couponID).Scan(&count)
	require.NoError(t, err)
	return count
}

func CountOrders(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM orders WHERE user_id = $1", userID).Scan(&count)
	require.NoError(t, err)
	return count
}

func CountCartItems(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM cart_items WHERE user_id = $1", userID).Scan(&count)
	require.NoError(t, err)
	return count
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// US orders in tests carry a predictable 10% tax
	_, err := pool.Exec(ctx, `
		INSERT INTO tax_rates (country, rate) VALUES ('US', 0.1000);
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
