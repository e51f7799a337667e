package readstore

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"
)

const findProductByIDSQL = `
SELECT id, name, price_cents, stock, weight_kg, free_shipping_threshold_cents
FROM products
WHERE id = $1`

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(db db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: db}
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var snap shared.ProductSnapshot
	err := r.db.QueryRow(ctx, findProductByIDSQL, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.PriceCents,
		&snap.Stock,
		&snap.WeightKg,
		&snap.FreeShippingThresholdCents,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	return &snap, nil
}
