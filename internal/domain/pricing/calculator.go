package pricing

import (
	"errors"

	"storefront/internal/domain/coupon"
	"storefront/internal/domain/rates"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNoLines = errors.New("cannot price an empty cart")

type Line struct {
	ProductID                  uuid.UUID
	Quantity                   int32
	UnitPriceCents             int64
	WeightKg                   float64
	FreeShippingThresholdCents *int64
}

type Destination struct {
	Country    string
	State      string
	PostalCode string
}

type ShippingInput struct {
	// MethodSelected distinguishes "resolve through the configured rates"
	// from "charge the flat fallback": without a method there is nothing to
	// resolve against and no tier to surcharge.
	MethodSelected   bool
	Rates            []rates.ShippingRate
	DefaultCostCents int64
	Tier             rates.MethodTier
}

type Quote struct {
	SubtotalCents           int64
	DiscountCents           int64
	DiscountedSubtotalCents int64
	ShippingCents           int64
	TaxRate                 decimal.Decimal
	TaxCents                int64
	TotalCents              int64
	FreeShipping            bool
}

// Compute assembles an order total. The order of operations is fixed:
//
//	subtotal -> coupon discount -> shipping -> tax on the discounted
//	subtotal -> total
//
// Tax is charged on the discounted subtotal only, never on shipping. The
// free-shipping threshold is compared against the discounted subtotal and
// applies to every pricing path (estimate and checkout alike).
func Compute(
	lines []Line,
	coup *coupon.Coupon,
	dest Destination,
	shipping ShippingInput,
	taxRates []rates.TaxRate,
) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrNoLines
	}

	var subtotal int64
	var weight float64
	for _, l := range lines {
		subtotal += l.UnitPriceCents * int64(l.Quantity)
		weight += l.WeightKg * float64(l.Quantity)
	}

	var discount int64
	if coup != nil {
		discount = coup.DiscountAmountCents(subtotal)
	}
	discounted := subtotal - discount
	if discounted < 0 {
		discounted = 0
	}

	target := rates.Target{
		Country:     dest.Country,
		State:       dest.State,
		PostalCode:  dest.PostalCode,
		AmountCents: discounted,
		WeightKg:    weight,
	}

	shippingCents := shipping.DefaultCostCents
	if shipping.MethodSelected {
		shippingCents = rates.ResolveShippingCost(shipping.Rates, target, shipping.DefaultCostCents, shipping.Tier)
	}

	freeShipping := qualifiesForFreeShipping(lines, discounted)
	if freeShipping {
		shippingCents = 0
	}

	taxRate := rates.ResolveTaxRate(taxRates, target)
	taxCents := decimal.NewFromInt(discounted).Mul(taxRate).Round(0).IntPart()

	return Quote{
		SubtotalCents:           subtotal,
		DiscountCents:           discount,
		DiscountedSubtotalCents: discounted,
		ShippingCents:           shippingCents,
		TaxRate:                 taxRate,
		TaxCents:                taxCents,
		TotalCents:              discounted + shippingCents + taxCents,
		FreeShipping:            freeShipping,
	}, nil
}

func qualifiesForFreeShipping(lines []Line, discountedSubtotalCents int64) bool {
	for _, l := range lines {
		if l.FreeShippingThresholdCents != nil && *l.FreeShippingThresholdCents <= discountedSubtotalCents {
			return true
		}
	}
	return false
}
