package shared

import (
	"github.com/google/uuid"
)

// Command input params live here so the request DTO package can build them
// without importing usecase/commands (which imports the DTO package for auth).

type EstimateParams struct {
	ShippingAddressID uuid.UUID
	CouponCode        *string
	ShippingMethodID  *uuid.UUID
}

type LineParams struct {
	ProductID uuid.UUID
	Quantity  int32
}

type CreateOrderParams struct {
	ShippingAddressID uuid.UUID
	BillingAddressID  uuid.UUID
	PaymentMethod     string
	CouponCode        *string
	ShippingMethodID  *uuid.UUID
	Lines             []LineParams
}
