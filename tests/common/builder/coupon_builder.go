//go:build unit || e2e

package builder

import (
	"time"

	domcoupon "storefront/internal/domain/coupon"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	ValidFrom     time.Time
	ValidUntil    time.Time
	UsageLimit    *int32
	UsedCount     int32
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Now()
	return &CouponBuilder{
		Code:          "SAVE10",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
		UsageLimit:    nil,
		UsedCount:     0,
	}
}

func (c *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(c)
	return c
}

// Build methods
func (c *CouponBuilder) BuildDomain() (*domcoupon.Coupon, error) {
	return domcoupon.NewCoupon(
		uuid.New(),
		c.Code,
		c.DiscountType,
		c.DiscountValue,
		c.ValidFrom,
		c.ValidUntil,
		c.UsageLimit,
		c.UsedCount,
	)
}

func (c *CouponBuilder) BuildSnapshot() *shared.CouponSnapshot {
	return &shared.CouponSnapshot{
		ID:            uuid.New(),
		Code:          c.Code,
		DiscountType:  c.DiscountType,
		DiscountValue: c.DiscountValue,
		ValidFrom:     c.ValidFrom,
		ValidUntil:    c.ValidUntil,
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
	}
}

// Fluent builder methods
func (c *CouponBuilder) WithCode(code string) *CouponBuilder {
	c.Code = code
	return c
}

func (c *CouponBuilder) AsFixed(cents int64) *CouponBuilder {
	c.DiscountType = "fixed"
	c.DiscountValue = decimal.NewFromInt(cents)
	return c
}

func (c *CouponBuilder) AsPercentage(percent int64) *CouponBuilder {
	c.DiscountType = "percentage"
	c.DiscountValue = decimal.NewFromInt(percent)
	return c
}

func (c *CouponBuilder) WithWindow(from, until time.Time) *CouponBuilder {
	c.ValidFrom = from
	c.ValidUntil = until
	return c
}

func (c *CouponBuilder) WithUsageLimit(limit, used int32) *CouponBuilder {
	c.UsageLimit = &limit
	c.UsedCount = used
	return c
}

func (c *CouponBuilder) AsExpired() *CouponBuilder {
	now := time.Now()
	c.ValidFrom = now.Add(-48 * time.Hour)
	c.ValidUntil = now.Add(-24 * time.Hour)
	return c
}

func (c *CouponBuilder) AsNotYetValid() *CouponBuilder {
	now := time.Now()
	c.ValidFrom = now.Add(24 * time.Hour)
	c.ValidUntil = now.Add(48 * time.Hour)
	return c
}

func (c *CouponBuilder) AsExhausted() *CouponBuilder {
	limit := int32(5)
	c.UsageLimit = &limit
	c.UsedCount = 5
	return c
}
