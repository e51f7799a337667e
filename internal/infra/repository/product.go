package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
)

// The stock predicate is the authoritative oversell guard: a decrement that
// would drive stock negative matches zero rows.
const decrementStockSQL = `
UPDATE products
SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2`

const incrementStockSQL = `
UPDATE products
SET stock = stock + $2, updated_at = now()
WHERE id = $1`

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) DecrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int32) error {
	tag, err := tx.Exec(ctx, decrementStockSQL, productID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
	}
	return nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int32) error {
	tag, err := tx.Exec(ctx, incrementStockSQL, productID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to increment stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
