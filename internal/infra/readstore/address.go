package readstore

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/shared"
)

const findAddressByIDSQL = `
SELECT id, user_id, country, state, postal_code
FROM addresses
WHERE id = $1`

type AddressReadStore struct {
	db db.DBTX
}

func NewAddressReadStore(db db.DBTX) *AddressReadStore {
	return &AddressReadStore{db: db}
}

func (r *AddressReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.AddressSnapshot, error) {
	var snap shared.AddressSnapshot
	err := r.db.QueryRow(ctx, findAddressByIDSQL, id).Scan(
		&snap.ID,
		&snap.UserID,
		&snap.Country,
		&snap.State,
		&snap.PostalCode,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("address not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find address by ID", err)
	}
	return &snap, nil
}
