package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// Item is a frozen copy of a product's price at order time. Later price
// changes on the product must not affect historical orders.
type Item struct {
	productID  uuid.UUID
	quantity   Quantity
	unitPrice  Money
	totalPrice Money
}

func NewItem(productID uuid.UUID, quantity Quantity, unitPrice Money) Item {
	total := Money{cents: unitPrice.Cents() * int64(quantity.Value())}
	return Item{
		productID:  productID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		totalPrice: total,
	}
}

func ReconstructItem(productID uuid.UUID, quantity Quantity, unitPrice, totalPrice Money) Item {
	return Item{
		productID:  productID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		totalPrice: totalPrice,
	}
}

func (i Item) ProductID() uuid.UUID { return i.productID }
func (i Item) Quantity() Quantity   { return i.quantity }
func (i Item) UnitPrice() Money     { return i.unitPrice }
func (i Item) TotalPrice() Money    { return i.totalPrice }

type Order struct {
	id                uuid.UUID
	userID            uuid.UUID
	status            Status
	paymentStatus     PaymentStatus
	shippingAddressID uuid.UUID
	billingAddressID  uuid.UUID
	paymentMethod     PaymentMethod
	items             []Item
	couponID          *uuid.UUID
	discount          Money
	shippingCost      Money
	taxAmount         Money
	totalAmount       Money
	createdAt         time.Time
	updatedAt         time.Time
}

type Totals struct {
	Discount     Money
	ShippingCost Money
	TaxAmount    Money
	TotalAmount  Money
}

func NewOrder(
	userID uuid.UUID,
	shippingAddressID, billingAddressID uuid.UUID,
	paymentMethod PaymentMethod,
	items []Item,
	couponID *uuid.UUID,
	totals Totals,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	return &Order{
		id:                uuid.New(),
		userID:            userID,
		status:            StatusPending,
		paymentStatus:     PaymentPending,
		shippingAddressID: shippingAddressID,
		billingAddressID:  billingAddressID,
		paymentMethod:     paymentMethod,
		items:             items,
		couponID:          couponID,
		discount:          totals.Discount,
		shippingCost:      totals.ShippingCost,
		taxAmount:         totals.TaxAmount,
		totalAmount:       totals.TotalAmount,
	}, nil
}

func ReconstructOrder(
	id, userID uuid.UUID,
	status Status,
	paymentStatus PaymentStatus,
	shippingAddressID, billingAddressID uuid.UUID,
	paymentMethod PaymentMethod,
	items []Item,
	couponID *uuid.UUID,
	totals Totals,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                id,
		userID:            userID,
		status:            status,
		paymentStatus:     paymentStatus,
		shippingAddressID: shippingAddressID,
		billingAddressID:  billingAddressID,
		paymentMethod:     paymentMethod,
		items:             items,
		couponID:          couponID,
		discount:          totals.Discount,
		shippingCost:      totals.ShippingCost,
		taxAmount:         totals.TaxAmount,
		totalAmount:       totals.TotalAmount,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Cancel transitions the order to cancelled and settles the payment flag:
// a paid order is refunded, an unpaid one is marked failed.
func (o *Order) Cancel() error {
	if !o.status.IsCancellable() {
		return ErrNotCancellable
	}

	o.status = StatusCancelled
	if o.paymentStatus == PaymentPaid {
		o.paymentStatus = PaymentRefunded
	} else {
		o.paymentStatus = PaymentFailed
	}
	return nil
}

func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.userID == userID
}

func (o *Order) ID() uuid.UUID                 { return o.id }
func (o *Order) UserID() uuid.UUID             { return o.userID }
func (o *Order) Status() Status                { return o.status }
func (o *Order) PaymentStatus() PaymentStatus  { return o.paymentStatus }
func (o *Order) ShippingAddressID() uuid.UUID  { return o.shippingAddressID }
func (o *Order) BillingAddressID() uuid.UUID   { return o.billingAddressID }
func (o *Order) PaymentMethod() PaymentMethod  { return o.paymentMethod }
func (o *Order) Items() []Item                 { return o.items }
func (o *Order) CouponID() *uuid.UUID          { return o.couponID }
func (o *Order) Discount() Money               { return o.discount }
func (o *Order) ShippingCost() Money           { return o.shippingCost }
func (o *Order) TaxAmount() Money              { return o.taxAmount }
func (o *Order) TotalAmount() Money            { return o.totalAmount }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) UpdatedAt() time.Time          { return o.updatedAt }
