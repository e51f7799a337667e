package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"storefront/internal/domain/coupon"
	"storefront/internal/domain/pricing"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/shared"
)

type EstimateParams = shared.EstimateParams

// EstimateResult mirrors the totals a subsequent order placement would
// produce, without touching stock or coupon counters.
type EstimateResult struct {
	SubtotalCents           int64   `json:"subtotal_cents"`
	DiscountCents           int64   `json:"discount_cents"`
	DiscountedSubtotalCents int64   `json:"discounted_subtotal_cents"`
	ShippingCents           int64   `json:"shipping_cents"`
	TaxRate                 float64 `json:"tax_rate"`
	TaxCents                int64   `json:"tax_cents"`
	TotalCents              int64   `json:"total_cents"`
	FreeShipping            bool    `json:"free_shipping"`
	CouponCode              *string `json:"coupon_code,omitempty"`
}

type CouponValidation struct {
	Valid         bool    `json:"valid"`
	Reason        *string `json:"reason,omitempty"`
	Code          string  `json:"code"`
	DiscountCents int64   `json:"discount_cents"`
}

type CheckoutCommands interface {
	Estimate(ctx context.Context, userID uuid.UUID, params EstimateParams) (*EstimateResult, error)
	ValidateCoupon(ctx context.Context, code string, subtotalCents int64) (*CouponValidation, error)
}

type checkoutCommandsImpl struct {
	uow         shared.UnitOfWork
	checkoutCfg config.CheckoutConfig
	clock       clock.Clock
}

func NewCheckoutCommands(
	uow shared.UnitOfWork,
	checkoutCfg config.CheckoutConfig,
	clk clock.Clock,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		uow:         uow,
		checkoutCfg: checkoutCfg,
		clock:       clk,
	}
}

// Estimate prices the caller's cart through the same pipeline as order
// placement, so the preview cannot drift from what checkout will charge.
func (c *checkoutCommandsImpl) Estimate(ctx context.Context, userID uuid.UUID, params EstimateParams) (*EstimateResult, error) {
	reads := c.uow.CommandReads()

	cartLines, err := reads.CartLines(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if len(cartLines) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]LineParams, 0, len(cartLines))
	for _, cl := range cartLines {
		lines = append(lines, LineParams{ProductID: cl.ProductID, Quantity: cl.Quantity})
	}

	shippingAddr, err := loadOwnedAddress(ctx, reads, params.ShippingAddressID, userID)
	if err != nil {
		return nil, err
	}

	products, err := loadProducts(ctx, reads, lines)
	if err != nil {
		return nil, err
	}

	couponEntity, err := resolveCoupon(ctx, reads, params.CouponCode, c.clock.Now())
	if err != nil {
		return nil, err
	}

	shippingInput, err := resolveShipping(ctx, reads, params.ShippingMethodID, c.checkoutCfg.DefaultShippingCents)
	if err != nil {
		return nil, err
	}

	taxRates, err := reads.ActiveTaxRates(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	quote, err := pricing.Compute(
		pricingLines(lines, products),
		couponEntity,
		pricing.Destination{
			Country:    shippingAddr.Country,
			State:      shippingAddr.State,
			PostalCode: shippingAddr.PostalCode,
		},
		shippingInput,
		taxRates,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	taxRate, _ := quote.TaxRate.Float64()
	return &EstimateResult{
		SubtotalCents:           quote.SubtotalCents,
		DiscountCents:           quote.DiscountCents,
		DiscountedSubtotalCents: quote.DiscountedSubtotalCents,
		ShippingCents:           quote.ShippingCents,
		TaxRate:                 taxRate,
		TaxCents:                quote.TaxCents,
		TotalCents:              quote.TotalCents,
		FreeShipping:            quote.FreeShipping,
		CouponCode:              params.CouponCode,
	}, nil
}

// ValidateCoupon reports on a code without consuming usage; an invalid
// coupon is a negative result, not an error, so the storefront can render
// the reason inline.
func (c *checkoutCommandsImpl) ValidateCoupon(ctx context.Context, code string, subtotalCents int64) (*CouponValidation, error) {
	reads := c.uow.CommandReads()

	snap, err := reads.CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return invalidCoupon(code, "not_found"), nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	couponEntity, err := coupon.NewCoupon(
		snap.ID,
		snap.Code,
		snap.DiscountType,
		snap.DiscountValue,
		snap.ValidFrom,
		snap.ValidUntil,
		snap.UsageLimit,
		snap.UsedCount,
	)
	if err != nil {
		return invalidCoupon(code, "malformed"), nil
	}

	if err := couponEntity.ValidateUsage(c.clock.Now()); err != nil {
		switch {
		case errors.Is(err, coupon.ErrCouponNotYetValid):
			return invalidCoupon(code, "not_yet_valid"), nil
		case errors.Is(err, coupon.ErrCouponExpired):
			return invalidCoupon(code, "expired"), nil
		case errors.Is(err, coupon.ErrUsageLimitReached):
			return invalidCoupon(code, "usage_limit_reached"), nil
		default:
			return invalidCoupon(code, "invalid"), nil
		}
	}

	return &CouponValidation{
		Valid:         true,
		Code:          couponEntity.Code().String(),
		DiscountCents: couponEntity.DiscountAmountCents(subtotalCents),
	}, nil
}

func invalidCoupon(code, reason string) *CouponValidation {
	return &CouponValidation{Valid: false, Reason: &reason, Code: code}
}
