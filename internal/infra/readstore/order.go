package readstore

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"
)

const findOrderViewByIDSQL = `
SELECT o.id, o.user_id, o.status, o.payment_status, o.payment_method,
       o.subtotal_cents, o.discount_cents, o.shipping_cents, o.tax_cents, o.total_cents,
       o.coupon_id, c.code,
       sa.id, sa.country, sa.state, sa.city, sa.line1, sa.postal_code,
       ba.id, ba.country, ba.state, ba.city, ba.line1, ba.postal_code,
       o.created_at, o.updated_at
FROM orders o
JOIN addresses sa ON sa.id = o.shipping_address_id
JOIN addresses ba ON ba.id = o.billing_address_id
LEFT JOIN coupons c ON c.id = o.coupon_id
WHERE o.id = $1`

const findOrderItemViewsSQL = `
SELECT oi.product_id, p.name, oi.quantity, oi.unit_price_cents, oi.total_price_cents
FROM order_items oi
JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY p.name`

const findOrderListByUserSQL = `
SELECT o.id, o.status, o.payment_status, o.total_cents,
       (SELECT count(*) FROM order_items oi WHERE oi.order_id = o.id),
       o.created_at
FROM orders o
WHERE o.user_id = $1
ORDER BY o.created_at DESC, o.id DESC
LIMIT $2`

const findOrderSnapshotSQL = `
SELECT id, user_id, status, payment_status, payment_method,
       shipping_address_id, billing_address_id, coupon_id,
       discount_cents, shipping_cents, tax_cents, total_cents,
       created_at, updated_at
FROM orders
WHERE id = $1`

const findOrderItemSnapshotsSQL = `
SELECT product_id, quantity, unit_price_cents, total_price_cents
FROM order_items
WHERE order_id = $1`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var view queries.OrderView
	err := r.db.QueryRow(ctx, findOrderViewByIDSQL, id).Scan(
		&view.ID,
		&view.UserID,
		&view.Status,
		&view.PaymentStatus,
		&view.PaymentMethod,
		&view.SubtotalCents,
		&view.DiscountCents,
		&view.ShippingCents,
		&view.TaxCents,
		&view.TotalCents,
		&view.CouponID,
		&view.CouponCode,
		&view.ShippingAddress.ID,
		&view.ShippingAddress.Country,
		&view.ShippingAddress.State,
		&view.ShippingAddress.City,
		&view.ShippingAddress.Line1,
		&view.ShippingAddress.PostalCode,
		&view.BillingAddress.ID,
		&view.BillingAddress.Country,
		&view.BillingAddress.State,
		&view.BillingAddress.City,
		&view.BillingAddress.Line1,
		&view.BillingAddress.PostalCode,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return &view, nil
}

func (r *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := r.db.Query(ctx, findOrderItemViewsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order items", err)
	}
	defer rows.Close()

	var items []queries.OrderItemView
	for rows.Next() {
		var item queries.OrderItemView
		err := rows.Scan(
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPriceCents,
			&item.TotalPriceCents,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order items", err)
	}
	return items, nil
}

func (r *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderListItem, error) {
	rows, err := r.db.Query(ctx, findOrderListByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		err := rows.Scan(
			&item.ID,
			&item.Status,
			&item.PaymentStatus,
			&item.TotalCents,
			&item.ItemCount,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order list", err)
	}
	return items, nil
}

// FindSnapshotByID serves the write side; commands rebuild the order
// aggregate from it to authorize and reverse an order.
func (r *OrderReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	var snap shared.OrderSnapshot
	err := r.db.QueryRow(ctx, findOrderSnapshotSQL, id).Scan(
		&snap.ID,
		&snap.UserID,
		&snap.Status,
		&snap.PaymentStatus,
		&snap.PaymentMethod,
		&snap.ShippingAddressID,
		&snap.BillingAddressID,
		&snap.CouponID,
		&snap.DiscountCents,
		&snap.ShippingCents,
		&snap.TaxCents,
		&snap.TotalCents,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order snapshot", err)
	}

	rows, err := r.db.Query(ctx, findOrderItemSnapshotsSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order item snapshots", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item shared.OrderItemSnapshot
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item snapshot", err)
		}
		snap.Items = append(snap.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order item snapshots", err)
	}

	return &snap, nil
}
