package shared

import (
	"context"

	"storefront/internal/domain/order"
	"storefront/internal/domain/rates"
	"storefront/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Products() ProductRepository
	Coupons() CouponRepository
	Carts() CartRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	AddressByID(ctx context.Context, id uuid.UUID) (*AddressSnapshot, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	CartLines(ctx context.Context, userID uuid.UUID) ([]CartLine, error)
	ShippingMethodByID(ctx context.Context, id uuid.UUID) (*ShippingMethodSnapshot, error)
	ShippingRatesByMethod(ctx context.Context, methodID uuid.UUID) ([]rates.ShippingRate, error)
	ActiveTaxRates(ctx context.Context) ([]rates.TaxRate, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status, payment order.PaymentStatus) error
}

// ProductRepository mutates the shared stock counter. Both operations are
// single conditional statements at the storage layer: a decrement that would
// go below zero affects no rows and surfaces as a conflict.
type ProductRepository interface {
	DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int32) error
	IncrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int32) error
}

// CouponRepository increments the shared usage counter; the increment is
// conditional on the usage limit and affects no rows once the cap is hit.
type CouponRepository interface {
	IncrementUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) error
}

type CartRepository interface {
	Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
