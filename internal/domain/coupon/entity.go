package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrUsageLimitReached = errors.New("coupon usage limit reached")
)

type Coupon struct {
	id         uuid.UUID
	code       Code
	discount   Discount
	validFrom  time.Time
	validUntil time.Time
	usageLimit *int32
	usedCount  int32
}

func NewCoupon(
	id uuid.UUID,
	code string,
	discountType string,
	discountValue decimal.Decimal,
	validFrom, validUntil time.Time,
	usageLimit *int32,
	usedCount int32,
) (*Coupon, error) {
	couponCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	dt, err := NewDiscountType(discountType)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(dt, discountValue)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:         id,
		code:       couponCode,
		discount:   discount,
		validFrom:  validFrom,
		validUntil: validUntil,
		usageLimit: usageLimit,
		usedCount:  usedCount,
	}, nil
}

func (c *Coupon) IsWithinWindow(t time.Time) bool {
	return !t.Before(c.validFrom) && !t.After(c.validUntil)
}

func (c *Coupon) HasRemainingUses() bool {
	return c.usageLimit == nil || c.usedCount < *c.usageLimit
}

// ValidateUsage is checked both before pricing and again inside the order
// transaction; the usage counter is shared between concurrent orders.
func (c *Coupon) ValidateUsage(t time.Time) error {
	if t.Before(c.validFrom) {
		return ErrCouponNotYetValid
	}
	if t.After(c.validUntil) {
		return ErrCouponExpired
	}
	if !c.HasRemainingUses() {
		return ErrUsageLimitReached
	}
	return nil
}

func (c *Coupon) DiscountAmountCents(subtotalCents int64) int64 {
	return c.discount.AmountCents(subtotalCents)
}

func (c *Coupon) ID() uuid.UUID         { return c.id }
func (c *Coupon) Code() Code            { return c.code }
func (c *Coupon) Discount() Discount    { return c.discount }
func (c *Coupon) ValidFrom() time.Time  { return c.validFrom }
func (c *Coupon) ValidUntil() time.Time { return c.validUntil }
func (c *Coupon) UsageLimit() *int32    { return c.usageLimit }
func (c *Coupon) UsedCount() int32      { return c.usedCount }
