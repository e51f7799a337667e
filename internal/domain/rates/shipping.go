package rates

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MethodTier string

const (
	TierStandard MethodTier = "standard"
	TierExpress  MethodTier = "express"
	TierNextDay  MethodTier = "next_day"
)

func (t MethodTier) IsValid() bool {
	switch t {
	case TierStandard, TierExpress, TierNextDay:
		return true
	default:
		return false
	}
}

// NewMethodTier falls back to standard for unknown values; method tiers are
// operator-entered data and a typo must not break checkout.
func NewMethodTier(s string) MethodTier {
	t := MethodTier(s)
	if !t.IsValid() {
		return TierStandard
	}
	return t
}

type ShippingRate struct {
	ShippingMethodID uuid.UUID
	Country          string
	State            *string
	PostalPrefix     *string
	MinOrderCents    *int64
	MaxOrderCents    *int64
	MinWeightKg      *float64
	MaxWeightKg      *float64
	CostCents        int64
}

func (r ShippingRate) RateCountry() string       { return r.Country }
func (r ShippingRate) RateState() *string        { return r.State }
func (r ShippingRate) RatePostalPrefix() *string { return r.PostalPrefix }
func (r ShippingRate) RateBounds() Bounds {
	return Bounds{
		MinAmountCents: r.MinOrderCents,
		MaxAmountCents: r.MaxOrderCents,
		MinWeightKg:    r.MinWeightKg,
		MaxWeightKg:    r.MaxWeightKg,
	}
}

// ResolveShippingCost resolves the base cost through the tier cascade,
// falling back to the method's default cost, then adds the flat distance
// surcharge for the destination zone. The surcharge is additive and never
// replaces the resolved base cost.
func ResolveShippingCost(candidates []ShippingRate, target Target, defaultCostCents int64, tier MethodTier) int64 {
	base := defaultCostCents
	if rate, ok := Resolve(candidates, target); ok {
		base = rate.CostCents
	}
	return base + DistanceSurchargeCents(target.Country, target.State, tier)
}

type TaxRate struct {
	Country      string
	State        *string
	PostalPrefix *string
	Rate         decimal.Decimal
}

func (r TaxRate) RateCountry() string       { return r.Country }
func (r TaxRate) RateState() *string        { return r.State }
func (r TaxRate) RatePostalPrefix() *string { return r.PostalPrefix }
func (r TaxRate) RateBounds() Bounds        { return Bounds{} }

// ResolveTaxRate returns the applicable tax rate for a destination, or zero
// when nothing is configured. Egypt is a statutory override: a flat 14% VAT
// that bypasses the configured tiers entirely.
func ResolveTaxRate(candidates []TaxRate, target Target) decimal.Decimal {
	if target.Country == CountryEgypt {
		return EgyptVATRate
	}
	if rate, ok := Resolve(candidates, target); ok {
		return rate.Rate
	}
	return decimal.Zero
}
