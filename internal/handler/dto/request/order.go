package request

import (
	"strings"

	"github.com/google/uuid"

	"storefront/internal/usecase/shared"
)

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	ShippingAddressID uuid.UUID          `json:"shipping_address_id" binding:"required"`
	BillingAddressID  uuid.UUID          `json:"billing_address_id" binding:"required"`
	PaymentMethod     string             `json:"payment_method" binding:"required"`
	CouponCode        *string            `json:"coupon_code,omitempty"`
	ShippingMethodID  *uuid.UUID         `json:"shipping_method_id,omitempty"`
	Items             []OrderLineRequest `json:"items" binding:"required,dive"`
}

func (r CreateOrderRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateOrderRequest) ToParams() shared.CreateOrderParams {
	lines := make([]shared.LineParams, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, shared.LineParams{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return shared.CreateOrderParams{
		ShippingAddressID: r.ShippingAddressID,
		BillingAddressID:  r.BillingAddressID,
		PaymentMethod:     strings.TrimSpace(r.PaymentMethod),
		CouponCode:        r.GetCouponCode(),
		ShippingMethodID:  r.ShippingMethodID,
		Lines:             lines,
	}
}
