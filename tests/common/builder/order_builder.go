//go:build unit || e2e

package builder

import (
	"time"

	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	UserID            uuid.UUID
	ShippingAddressID uuid.UUID
	BillingAddressID  uuid.UUID
	PaymentMethod     string
	CouponCode        *string
	ShippingMethodID  *uuid.UUID
	Items             []reqdto.OrderLineRequest
	Status            string
	PaymentStatus     string
	SubtotalCents     int64
	DiscountCents     int64
	ShippingCents     int64
	TaxCents          int64
	TotalCents        int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Now()
	addressID := uuid.New()
	return &OrderBuilder{
		UserID:            uuid.New(),
		ShippingAddressID: addressID,
		BillingAddressID:  addressID,
		PaymentMethod:     "credit_card",
		Items: []reqdto.OrderLineRequest{
			{ProductID: uuid.New(), Quantity: 2},
		},
		Status:        "pending",
		PaymentStatus: "pending",
		SubtotalCents: 2000,
		DiscountCents: 0,
		ShippingCents: 500,
		TaxCents:      250,
		TotalCents:    2750,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

// Build methods
func (o *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{
		ShippingAddressID: o.ShippingAddressID,
		BillingAddressID:  o.BillingAddressID,
		PaymentMethod:     o.PaymentMethod,
		CouponCode:        o.CouponCode,
		ShippingMethodID:  o.ShippingMethodID,
		Items:             o.Items,
	}
}

func (o *OrderBuilder) BuildView() *queries.OrderView {
	items := make([]queries.OrderItemView, 0, len(o.Items))
	for _, line := range o.Items {
		unitPrice := int64(1000)
		items = append(items, queries.OrderItemView{
			ProductID:       line.ProductID,
			ProductName:     "Test Product",
			Quantity:        line.Quantity,
			UnitPriceCents:  unitPrice,
			TotalPriceCents: unitPrice * int64(line.Quantity),
		})
	}

	return &queries.OrderView{
		ID:            uuid.New(),
		UserID:        o.UserID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		PaymentMethod: o.PaymentMethod,
		SubtotalCents: o.SubtotalCents,
		DiscountCents: o.DiscountCents,
		ShippingCents: o.ShippingCents,
		TaxCents:      o.TaxCents,
		TotalCents:    o.TotalCents,
		CouponCode:    o.CouponCode,
		ShippingAddress: queries.AddressView{
			ID:         o.ShippingAddressID,
			Country:    "US",
			State:      "CA",
			City:       "San Francisco",
			Line1:      "1 Market St",
			PostalCode: "94105",
		},
		BillingAddress: queries.AddressView{
			ID:         o.BillingAddressID,
			Country:    "US",
			State:      "CA",
			City:       "San Francisco",
			Line1:      "1 Market St",
			PostalCode: "94105",
		},
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (o *OrderBuilder) BuildListItem() *queries.OrderListItem {
	var itemCount int32
	for _, line := range o.Items {
		itemCount += line.Quantity
	}

	return &queries.OrderListItem{
		ID:            uuid.New(),
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		TotalCents:    o.TotalCents,
		ItemCount:     itemCount,
		CreatedAt:     o.CreatedAt,
	}
}

// Fluent builder methods
func (o *OrderBuilder) WithUserID(userID uuid.UUID) *OrderBuilder {
	o.UserID = userID
	return o
}

func (o *OrderBuilder) WithPaymentMethod(method string) *OrderBuilder {
	o.PaymentMethod = method
	return o
}

func (o *OrderBuilder) WithCouponCode(code string) *OrderBuilder {
	o.CouponCode = &code
	return o
}

func (o *OrderBuilder) WithShippingMethodID(methodID uuid.UUID) *OrderBuilder {
	o.ShippingMethodID = &methodID
	return o
}

func (o *OrderBuilder) WithItems(items ...reqdto.OrderLineRequest) *OrderBuilder {
	o.Items = items
	return o
}

func (o *OrderBuilder) WithoutItems() *OrderBuilder {
	o.Items = nil
	return o
}

func (o *OrderBuilder) AsCancelled() *OrderBuilder {
	o.Status = "cancelled"
	o.PaymentStatus = "failed"
	return o
}

func (o *OrderBuilder) AsShipped() *OrderBuilder {
	o.Status = "shipped"
	o.PaymentStatus = "paid"
	return o
}
