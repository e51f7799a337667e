package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/coupon"
	"storefront/internal/domain/order"
	"storefront/internal/domain/pricing"
	"storefront/internal/domain/rates"
	"storefront/internal/infra"
	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/pkg/errs"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart              = errs.New("cart is empty")
	ErrInvalidAddress         = errs.New("invalid address")
	ErrProductNotFound        = errs.New("product not found")
	ErrInsufficientStock      = errs.New("insufficient stock")
	ErrCouponNotFound         = errs.New("coupon not found")
	ErrInvalidCoupon          = errs.New("invalid coupon")
	ErrCouponLimitReached     = errs.New("coupon usage limit reached")
	ErrShippingMethodNotFound = errs.New("shipping method not found")
	ErrShippingMethodInactive = errs.New("shipping method is inactive")
	ErrOrderNotFound          = errs.New("order not found")
	ErrOrderForbidden         = errs.New("order does not belong to user")
	ErrOrderNotCancellable    = errs.New("order is not cancellable")
	ErrDomainValidation       = errs.New("domain validation error")
	ErrDatabaseOperation      = errs.New("database operation failed")
)

// InsufficientStockError identifies the offending line so the client can
// highlight it.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

type LineParams = shared.LineParams

type CreateOrderParams = shared.CreateOrderParams

type OrderCommands interface {
	Create(ctx context.Context, userID uuid.UUID, params CreateOrderParams) (*queries.OrderView, error)
	Cancel(ctx context.Context, orderID, userID uuid.UUID) (*queries.OrderView, error)
}

type orderCommandsImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
	checkoutCfg  config.CheckoutConfig
	clock        clock.Clock
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	orderQueries queries.OrderQueries,
	checkoutCfg config.CheckoutConfig,
	clk clock.Clock,
) OrderCommands {
	return &orderCommandsImpl{
		uow:          uow,
		orderQueries: orderQueries,
		checkoutCfg:  checkoutCfg,
		clock:        clk,
	}
}

// Create runs the order placement transaction: validate addresses and stock,
// resolve coupon/shipping/tax, price, then commit stock decrements, coupon
// usage, the order aggregate and cart teardown as one atomic unit.
func (o *orderCommandsImpl) Create(ctx context.Context, userID uuid.UUID, params CreateOrderParams) (*queries.OrderView, error) {
	if len(params.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	paymentMethod, err := order.NewPaymentMethod(params.PaymentMethod)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	reads := o.uow.CommandReads()

	shippingAddr, err := loadOwnedAddress(ctx, reads, params.ShippingAddressID, userID)
	if err != nil {
		return nil, err
	}
	if _, err := loadOwnedAddress(ctx, reads, params.BillingAddressID, userID); err != nil {
		return nil, err
	}

	products, err := loadProducts(ctx, reads, params.Lines)
	if err != nil {
		return nil, err
	}

	couponEntity, err := resolveCoupon(ctx, reads, params.CouponCode, o.clock.Now())
	if err != nil {
		return nil, err
	}

	shippingInput, err := resolveShipping(ctx, reads, params.ShippingMethodID, o.checkoutCfg.DefaultShippingCents)
	if err != nil {
		return nil, err
	}

	taxRates, err := reads.ActiveTaxRates(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	quote, err := pricing.Compute(
		pricingLines(params.Lines, products),
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

	orderEntity, err := o.buildOrder(userID, params, paymentMethod, products, couponEntity, quote)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	orderID, err := o.commitOrder(ctx, orderEntity, params.Lines, couponEntity, userID)
	if err != nil {
		return nil, err
	}

	view, err := o.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return view, nil
}

// Cancel reverses a not-yet-fulfilled order: stock is restored and the
// payment flag settled, all inside one transaction. The status flip is a
// conditional update so a concurrent fulfillment transition cannot be
// overwritten.
func (o *orderCommandsImpl) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*queries.OrderView, error) {
	snap, err := o.uow.CommandReads().OrderByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	orderEntity, err := orderFromSnapshot(snap)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	if !orderEntity.IsOwnedBy(userID) {
		return nil, ErrOrderForbidden
	}
	if err := orderEntity.Cancel(); err != nil {
		return nil, ErrOrderNotCancellable
	}

	err = o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The guard update runs first: zero rows means the order moved out
		// of a cancellable state since the read above.
		if err := tx.Orders().UpdateStatus(ctx, tx.DB(), orderID, orderEntity.Status(), orderEntity.PaymentStatus()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrOrderNotCancellable
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}

		for _, item := range orderEntity.Items() {
			if err := tx.Products().IncrementStock(ctx, tx.DB(), item.ProductID(), item.Quantity().Value()); err != nil {
				return errs.Mark(err, ErrDatabaseOperation)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := o.orderQueries.GetByIDSystem(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return view, nil
}

// orderFromSnapshot rebuilds the aggregate from persisted state so domain
// rules, not command code, decide ownership and cancellability.
func orderFromSnapshot(snap *shared.OrderSnapshot) (*order.Order, error) {
	status, err := order.NewStatus(snap.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.NewPaymentStatus(snap.PaymentStatus)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.NewPaymentMethod(snap.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(snap.Items))
	for _, it := range snap.Items {
		quantity, err := order.NewQuantity(it.Quantity)
		if err != nil {
			return nil, err
		}
		unitPrice, err := order.NewMoney(it.UnitPrice)
		if err != nil {
			return nil, err
		}
		totalPrice, err := order.NewMoney(it.TotalPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, order.ReconstructItem(it.ProductID, quantity, unitPrice, totalPrice))
	}

	totals, err := snapshotTotals(snap)
	if err != nil {
		return nil, err
	}

	return order.ReconstructOrder(
		snap.ID, snap.UserID,
		status, paymentStatus,
		snap.ShippingAddressID, snap.BillingAddressID,
		paymentMethod, items, snap.CouponID,
		totals,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}

func snapshotTotals(snap *shared.OrderSnapshot) (order.Totals, error) {
	discount, err := order.NewMoney(snap.DiscountCents)
	if err != nil {
		return order.Totals{}, err
	}
	shippingCost, err := order.NewMoney(snap.ShippingCents)
	if err != nil {
		return order.Totals{}, err
	}
	taxAmount, err := order.NewMoney(snap.TaxCents)
	if err != nil {
		return order.Totals{}, err
	}
	totalAmount, err := order.NewMoney(snap.TotalCents)
	if err != nil {
		return order.Totals{}, err
	}
	return order.Totals{
		Discount:     discount,
		ShippingCost: shippingCost,
		TaxAmount:    taxAmount,
		TotalAmount:  totalAmount,
	}, nil
}

func loadOwnedAddress(
	ctx context.Context,
	reads shared.CommandReads,
	addressID, userID uuid.UUID,
) (*shared.AddressSnapshot, error) {
	addr, err := reads.AddressByID(ctx, addressID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidAddress
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	// Same error for missing and not-owned; existence of another user's
	// address must not leak.
	if addr.UserID != userID {
		return nil, ErrInvalidAddress
	}
	return addr, nil
}

func loadProducts(
	ctx context.Context,
	reads shared.CommandReads,
	lines []LineParams,
) (map[uuid.UUID]*shared.ProductSnapshot, error) {
	products := make(map[uuid.UUID]*shared.ProductSnapshot, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, errs.Mark(order.ErrInvalidQuantity, ErrDomainValidation)
		}

		product, err := reads.ProductByID(ctx, line.ProductID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperation)
		}

		// Every line is validated before any decrement is applied; the
		// authoritative check is the conditional update inside the
		// transaction.
		if product.Stock < line.Quantity {
			return nil, errs.Mark(&InsufficientStockError{
				ProductID: line.ProductID,
				Requested: line.Quantity,
				Available: product.Stock,
			}, ErrInsufficientStock)
		}
		products[line.ProductID] = product
	}
	return products, nil
}

func resolveCoupon(
	ctx context.Context,
	reads shared.CommandReads,
	code *string,
	now time.Time,
) (*coupon.Coupon, error) {
	if code == nil {
		return nil, nil
	}

	snap, err := reads.CouponByCode(ctx, *code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCouponNotFound
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
		return nil, errs.Mark(err, ErrInvalidCoupon)
	}

	// A bad coupon is a hard failure: the shopper typed the code expecting a
	// discount, so silently charging full price is the worse outcome.
	if err := couponEntity.ValidateUsage(now); err != nil {
		if errors.Is(err, coupon.ErrUsageLimitReached) {
			return nil, ErrCouponLimitReached
		}
		return nil, errs.Mark(err, ErrInvalidCoupon)
	}

	return couponEntity, nil
}

func resolveShipping(
	ctx context.Context,
	reads shared.CommandReads,
	methodID *uuid.UUID,
	fallbackCostCents int64,
) (pricing.ShippingInput, error) {
	if methodID == nil {
		return pricing.ShippingInput{
			MethodSelected:   false,
			DefaultCostCents: fallbackCostCents,
		}, nil
	}

	method, err := reads.ShippingMethodByID(ctx, *methodID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return pricing.ShippingInput{}, ErrShippingMethodNotFound
		}
		return pricing.ShippingInput{}, errs.Mark(err, ErrDatabaseOperation)
	}
	if !method.IsActive {
		return pricing.ShippingInput{}, ErrShippingMethodInactive
	}

	shippingRates, err := reads.ShippingRatesByMethod(ctx, method.ID)
	if err != nil {
		return pricing.ShippingInput{}, errs.Mark(err, ErrDatabaseOperation)
	}

	return pricing.ShippingInput{
		MethodSelected:   true,
		Rates:            shippingRates,
		DefaultCostCents: method.DefaultCostCents,
		Tier:             rates.NewMethodTier(method.Tier),
	}, nil
}

func (o *orderCommandsImpl) buildOrder(
	userID uuid.UUID,
	params CreateOrderParams,
	paymentMethod order.PaymentMethod,
	products map[uuid.UUID]*shared.ProductSnapshot,
	couponEntity *coupon.Coupon,
	quote pricing.Quote,
) (*order.Order, error) {
	items := make([]order.Item, 0, len(params.Lines))
	for _, line := range params.Lines {
		product := products[line.ProductID]

		quantity, err := order.NewQuantity(line.Quantity)
		if err != nil {
			return nil, err
		}
		unitPrice, err := order.NewMoney(product.PriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, order.NewItem(line.ProductID, quantity, unitPrice))
	}

	var couponID *uuid.UUID
	if couponEntity != nil {
		id := couponEntity.ID()
		couponID = &id
	}

	return order.NewOrder(
		userID,
		params.ShippingAddressID,
		params.BillingAddressID,
		paymentMethod,
		items,
		couponID,
		order.Totals{
			Discount:     order.MustMoney(quote.DiscountCents),
			ShippingCost: order.MustMoney(quote.ShippingCents),
			TaxAmount:    order.MustMoney(quote.TaxCents),
			TotalAmount:  order.MustMoney(quote.TotalCents),
		},
	)
}

func (o *orderCommandsImpl) commitOrder(
	ctx context.Context,
	orderEntity *order.Order,
	lines []LineParams,
	couponEntity *coupon.Coupon,
	userID uuid.UUID,
) (uuid.UUID, error) {
	var orderID uuid.UUID

	err := o.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Atomic conditional decrement per line: a concurrent order that
		// depleted the stock first makes this a zero-row update.
		for _, line := range lines {
			if err := tx.Products().DecrementStock(ctx, tx.DB(), line.ProductID, line.Quantity); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return stockConflict(ctx, tx, line)
				}
				return errs.Mark(err, ErrDatabaseOperation)
			}
		}

		if couponEntity != nil {
			// Conditional increment re-checks the cap at commit time; the
			// validation above raced against every other in-flight order.
			if err := tx.Coupons().IncrementUsage(ctx, tx.DB(), couponEntity.ID()); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return ErrCouponLimitReached
				}
				return errs.Mark(err, ErrDatabaseOperation)
			}
		}

		id, err := tx.Orders().Create(ctx, tx.DB(), orderEntity)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		orderID = id

		if err := tx.Carts().Clear(ctx, tx.DB(), userID); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return orderID, nil
}

func stockConflict(ctx context.Context, tx shared.Tx, line LineParams) error {
	available := int32(0)
	if product, err := tx.Reads().ProductByID(ctx, line.ProductID); err == nil {
		available = product.Stock
	}
	return errs.Mark(&InsufficientStockError{
		ProductID: line.ProductID,
		Requested: line.Quantity,
		Available: available,
	}, ErrInsufficientStock)
}

func pricingLines(lines []LineParams, products map[uuid.UUID]*shared.ProductSnapshot) []pricing.Line {
	result := make([]pricing.Line, 0, len(lines))
	for _, line := range lines {
		product := products[line.ProductID]
		result = append(result, pricing.Line{
			ProductID:                  line.ProductID,
			Quantity:                   line.Quantity,
			UnitPriceCents:             product.PriceCents,
			WeightKg:                   product.WeightKg,
			FreeShippingThresholdCents: product.FreeShippingThresholdCents,
		})
	}
	return result
}
