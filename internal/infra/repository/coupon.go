package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
)

// Usage is capped at commit time: once used_count reaches the limit the
// increment matches zero rows, regardless of what validation saw earlier.
const incrementCouponUsageSQL = `
UPDATE coupons
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`

type CouponRepository struct{}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{}
}

func (r *CouponRepository) IncrementUsage(ctx context.Context, tx db.DBTX, couponID uuid.UUID) error {
	tag, err := tx.Exec(ctx, incrementCouponUsageSQL, couponID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon usage limit reached", nil, infra.KindConflict)
	}
	return nil
}
