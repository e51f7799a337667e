package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
)

const insertOrderSQL = `
INSERT INTO orders (
    id, user_id, status, payment_status, payment_method,
    shipping_address_id, billing_address_id, coupon_id,
    subtotal_cents, discount_cents, shipping_cents, tax_cents, total_cents
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

const insertOrderItemSQL = `
INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents, total_price_cents)
VALUES ($1, $2, $3, $4, $5)`

const insertOrderCouponSQL = `
INSERT INTO order_coupons (order_id, coupon_id, discount_cents)
VALUES ($1, $2, $3)`

// The status predicate makes cancellation a conditional write: once an order
// leaves a cancellable state the update hits zero rows.
const updateOrderStatusSQL = `
UPDATE orders
SET status = $2, payment_status = $3, updated_at = now()
WHERE id = $1 AND status IN ('pending', 'confirmed')`

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	var subtotal int64
	for _, item := range o.Items() {
		subtotal += item.TotalPrice().Cents()
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, insertOrderSQL,
		o.ID(),
		o.UserID(),
		o.Status().String(),
		o.PaymentStatus().String(),
		o.PaymentMethod().String(),
		o.ShippingAddressID(),
		o.BillingAddressID(),
		o.CouponID(),
		subtotal,
		o.Discount().Cents(),
		o.ShippingCost().Cents(),
		o.TaxAmount().Cents(),
		o.TotalAmount().Cents(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert order", err)
	}

	for _, item := range o.Items() {
		_, err := tx.Exec(ctx, insertOrderItemSQL,
			id,
			item.ProductID(),
			item.Quantity().Value(),
			item.UnitPrice().Cents(),
			item.TotalPrice().Cents(),
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert order item", err)
		}
	}

	if couponID := o.CouponID(); couponID != nil {
		_, err := tx.Exec(ctx, insertOrderCouponSQL, id, *couponID, o.Discount().Cents())
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert order coupon", err)
		}
	}

	return id, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status, payment order.PaymentStatus) error {
	tag, err := tx.Exec(ctx, updateOrderStatusSQL, id, status.String(), payment.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not in updatable state", nil, infra.KindConflict)
	}
	return nil
}
