package order

import (
	"errors"
	"strings"
)

var (
	ErrNegativeMoney        = errors.New("money cannot be negative")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrEmptyPaymentMethod   = errors.New("payment method cannot be empty")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 {
	return m.cents
}

type Quantity struct {
	value int32
}

func NewQuantity(v int32) (Quantity, error) {
	if v <= 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: v}, nil
}

func (q Quantity) Value() int32 {
	return q.value
}

type PaymentMethod struct {
	value string
}

func NewPaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PaymentMethod{}, ErrEmptyPaymentMethod
	}
	return PaymentMethod{value: s}, nil
}

func (p PaymentMethod) String() string {
	return p.value
}
