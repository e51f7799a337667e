package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode   = errors.New("invalid coupon code format")
	ErrInvalidDiscountType = errors.New("invalid discount type")
	ErrInvalidDiscount     = errors.New("invalid discount value")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

func NewDiscountType(s string) (DiscountType, error) {
	t := DiscountType(s)
	switch t {
	case DiscountFixed, DiscountPercentage:
		return t, nil
	default:
		return "", ErrInvalidDiscountType
	}
}

func (t DiscountType) String() string {
	return string(t)
}

type Discount struct {
	discountType DiscountType
	// Cents for fixed discounts, percent (0-100) for percentage discounts.
	value decimal.Decimal
}

func NewDiscount(discountType DiscountType, value decimal.Decimal) (Discount, error) {
	switch discountType {
	case DiscountFixed:
		if value.IsNegative() {
			return Discount{}, ErrInvalidDiscount
		}
	case DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return Discount{}, ErrInvalidDiscount
		}
	default:
		return Discount{}, ErrInvalidDiscountType
	}
	return Discount{discountType: discountType, value: value}, nil
}

func (d Discount) Type() DiscountType {
	return d.discountType
}

func (d Discount) Value() decimal.Decimal {
	return d.value
}

// AmountCents returns the discount for a subtotal, clamped so the discounted
// subtotal never goes negative. Percentage math rounds half-up to whole cents.
func (d Discount) AmountCents(subtotalCents int64) int64 {
	subtotal := decimal.NewFromInt(subtotalCents)

	var amount decimal.Decimal
	switch d.discountType {
	case DiscountPercentage:
		amount = subtotal.Mul(d.value).Div(decimal.NewFromInt(100)).Round(0)
	default:
		amount = d.value
	}

	if amount.GreaterThan(subtotal) {
		return subtotalCents
	}
	if amount.IsNegative() {
		return 0
	}
	return amount.IntPart()
}
