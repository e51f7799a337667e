package response

import (
	"time"

	"github.com/google/uuid"

	"storefront/internal/usecase/queries"
)

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"userId"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"paymentStatus"`
	PaymentMethod   string              `json:"paymentMethod"`
	SubtotalCents   int64               `json:"subtotalCents"`
	DiscountCents   int64               `json:"discountCents"`
	ShippingCents   int64               `json:"shippingCents"`
	TaxCents        int64               `json:"taxCents"`
	TotalCents      int64               `json:"totalCents"`
	CouponCode      *string             `json:"couponCode,omitempty"`
	ShippingAddress AddressResponse     `json:"shippingAddress"`
	BillingAddress  AddressResponse     `json:"billingAddress"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type OrderItemResponse struct {
	ProductID       uuid.UUID `json:"productId"`
	ProductName     string    `json:"productName"`
	Quantity        int32     `json:"quantity"`
	UnitPriceCents  int64     `json:"unitPriceCents"`
	TotalPriceCents int64     `json:"totalPriceCents"`
}

type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	Country    string    `json:"country"`
	State      string    `json:"state"`
	City       string    `json:"city"`
	Line1      string    `json:"line1"`
	PostalCode string    `json:"postalCode"`
}

type OrderListResponse struct {
	ID            uuid.UUID `json:"id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	TotalCents    int64     `json:"totalCents"`
	ItemCount     int32     `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromOrderView(rm *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(rm.Items))
	for _, item := range rm.Items {
		items = append(items, OrderItemResponse{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPriceCents:  item.UnitPriceCents,
			TotalPriceCents: item.TotalPriceCents,
		})
	}

	return &OrderResponse{
		ID:              rm.ID,
		UserID:          rm.UserID,
		Status:          rm.Status,
		PaymentStatus:   rm.PaymentStatus,
		PaymentMethod:   rm.PaymentMethod,
		SubtotalCents:   rm.SubtotalCents,
		DiscountCents:   rm.DiscountCents,
		ShippingCents:   rm.ShippingCents,
		TaxCents:        rm.TaxCents,
		TotalCents:      rm.TotalCents,
		CouponCode:      rm.CouponCode,
		ShippingAddress: fromAddressView(rm.ShippingAddress),
		BillingAddress:  fromAddressView(rm.BillingAddress),
		Items:           items,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func fromAddressView(rm queries.AddressView) AddressResponse {
	return AddressResponse{
		ID:         rm.ID,
		Country:    rm.Country,
		State:      rm.State,
		City:       rm.City,
		Line1:      rm.Line1,
		PostalCode: rm.PostalCode,
	}
}

func FromOrderListItem(rm *queries.OrderListItem) *OrderListResponse {
	return &OrderListResponse{
		ID:            rm.ID,
		Status:        rm.Status,
		PaymentStatus: rm.PaymentStatus,
		TotalCents:    rm.TotalCents,
		ItemCount:     rm.ItemCount,
		CreatedAt:     rm.CreatedAt,
	}
}
