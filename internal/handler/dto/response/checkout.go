package response

import (
	"github.com/google/uuid"

	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"
)

type EstimateResponse struct {
	SubtotalCents           int64   `json:"subtotalCents"`
	DiscountCents           int64   `json:"discountCents"`
	DiscountedSubtotalCents int64   `json:"discountedSubtotalCents"`
	ShippingCents           int64   `json:"shippingCents"`
	TaxRate                 float64 `json:"taxRate"`
	TaxCents                int64   `json:"taxCents"`
	TotalCents              int64   `json:"totalCents"`
	FreeShipping            bool    `json:"freeShipping"`
	CouponCode              *string `json:"couponCode,omitempty"`
}

type CouponValidationResponse struct {
	Valid         bool    `json:"valid"`
	Reason        *string `json:"reason,omitempty"`
	Code          string  `json:"code"`
	DiscountCents int64   `json:"discountCents"`
}

type ShippingMethodResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Tier             string    `json:"tier"`
	DefaultCostCents int64     `json:"defaultCostCents"`
}

func FromEstimateResult(rm *commands.EstimateResult) *EstimateResponse {
	return &EstimateResponse{
		SubtotalCents:           rm.SubtotalCents,
		DiscountCents:           rm.DiscountCents,
		DiscountedSubtotalCents: rm.DiscountedSubtotalCents,
		ShippingCents:           rm.ShippingCents,
		TaxRate:                 rm.TaxRate,
		TaxCents:                rm.TaxCents,
		TotalCents:              rm.TotalCents,
		FreeShipping:            rm.FreeShipping,
		CouponCode:              rm.CouponCode,
	}
}

func FromCouponValidation(rm *commands.CouponValidation) *CouponValidationResponse {
	return &CouponValidationResponse{
		Valid:         rm.Valid,
		Reason:        rm.Reason,
		Code:          rm.Code,
		DiscountCents: rm.DiscountCents,
	}
}

func FromShippingMethodView(rm *queries.ShippingMethodView) *ShippingMethodResponse {
	return &ShippingMethodResponse{
		ID:               rm.ID,
		Name:             rm.Name,
		Tier:             rm.Tier,
		DefaultCostCents: rm.DefaultCostCents,
	}
}
