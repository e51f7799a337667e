package request

import (
	"strings"

	"github.com/google/uuid"

	"storefront/internal/usecase/shared"
)

type EstimateRequest struct {
	ShippingAddressID uuid.UUID  `json:"shipping_address_id" binding:"required"`
	CouponCode        *string    `json:"coupon_code,omitempty"`
	ShippingMethodID  *uuid.UUID `json:"shipping_method_id,omitempty"`
}

func (r EstimateRequest) ToParams() shared.EstimateParams {
	couponCode := r.CouponCode
	if couponCode != nil {
		trimmed := strings.TrimSpace(*couponCode)
		if trimmed == "" {
			couponCode = nil
		} else {
			couponCode = &trimmed
		}
	}

	return shared.EstimateParams{
		ShippingAddressID: r.ShippingAddressID,
		CouponCode:        couponCode,
		ShippingMethodID:  r.ShippingMethodID,
	}
}

type ValidateCouponRequest struct {
	Code          string `json:"code" binding:"required"`
	SubtotalCents int64  `json:"subtotal_cents" binding:"gte=0"`
}
