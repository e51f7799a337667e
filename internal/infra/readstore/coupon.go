package readstore

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"
)

const findCouponByCodeSQL = `
SELECT id, code, discount_type, discount_value::text, valid_from, valid_until, usage_limit, used_count
FROM coupons
WHERE code = $1`

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(db db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: db}
}

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	normalizedCode := strings.ToUpper(strings.TrimSpace(code))

	var (
		snap     shared.CouponSnapshot
		rawValue string
	)
	err := r.db.QueryRow(ctx, findCouponByCodeSQL, normalizedCode).Scan(
		&snap.ID,
		&snap.Code,
		&snap.DiscountType,
		&rawValue,
		&snap.ValidFrom,
		&snap.ValidUntil,
		&snap.UsageLimit,
		&snap.UsedCount,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	value, err := decimal.NewFromString(rawValue)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to parse coupon discount value", err)
	}
	snap.DiscountValue = value

	return &snap, nil
}
