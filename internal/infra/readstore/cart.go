package readstore

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/usecase/shared"
)

const findCartLinesSQL = `
SELECT product_id, quantity
FROM cart_items
WHERE user_id = $1
ORDER BY created_at`

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(db db.DBTX) *CartReadStore {
	return &CartReadStore{db: db}
}

func (r *CartReadStore) FindLinesByUser(ctx context.Context, userID uuid.UUID) ([]shared.CartLine, error) {
	rows, err := r.db.Query(ctx, findCartLinesSQL, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find cart lines", err)
	}
	defer rows.Close()

	var lines []shared.CartLine
	for rows.Next() {
		var line shared.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate cart lines", err)
	}
	return lines, nil
}
