package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)

type ProductSnapshot struct {
	ID                         uuid.UUID
	Name                       string
	PriceCents                 int64
	Stock                      int32
	WeightKg                   float64
	FreeShippingThresholdCents *int64
}

type AddressSnapshot struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Country    string
	State      string
	PostalCode string
}

type CouponSnapshot struct {
	ID            uuid.UUID
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	ValidFrom     time.Time
	ValidUntil    time.Time
	UsageLimit    *int32
	UsedCount     int32
}

type ShippingMethodSnapshot struct {
	ID               uuid.UUID
	Name             string
	Tier             string
	DefaultCostCents int64
	IsActive         bool
}

type CartLine struct {
	ProductID uuid.UUID
	Quantity  int32
}

type OrderItemSnapshot struct {
	ProductID  uuid.UUID
	Quantity   int32
	UnitPrice  int64
	TotalPrice int64
}

type OrderSnapshot struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Status            string
	PaymentStatus     string
	PaymentMethod     string
	ShippingAddressID uuid.UUID
	BillingAddressID  uuid.UUID
	CouponID          *uuid.UUID
	DiscountCents     int64
	ShippingCents     int64
	TaxCents          int64
	TotalCents        int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Items             []OrderItemSnapshot
}
