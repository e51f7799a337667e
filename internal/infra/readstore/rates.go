package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/domain/rates"
	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"
	"storefront/internal/usecase/queries"
	"storefront/internal/usecase/shared"
)

const findShippingMethodByIDSQL = `
SELECT id, name, tier, default_cost_cents, is_active
FROM shipping_methods
WHERE id = $1`

const findActiveShippingMethodsSQL = `
SELECT id, name, tier, default_cost_cents
FROM shipping_methods
WHERE is_active
ORDER BY default_cost_cents`

const findShippingRatesByMethodSQL = `
SELECT shipping_method_id, country, state, postal_prefix,
       min_order_cents, max_order_cents, min_weight_kg, max_weight_kg, cost_cents
FROM shipping_rates
WHERE shipping_method_id = $1`

const findActiveTaxRatesSQL = `
SELECT country, state, postal_prefix, rate::text
FROM tax_rates
WHERE is_active`

type RatesReadStore struct {
	db db.DBTX
}

func NewRatesReadStore(db db.DBTX) *RatesReadStore {
	return &RatesReadStore{db: db}
}

func (r *RatesReadStore) FindMethodByID(ctx context.Context, id uuid.UUID) (*shared.ShippingMethodSnapshot, error) {
	var snap shared.ShippingMethodSnapshot
	err := r.db.QueryRow(ctx, findShippingMethodByIDSQL, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.Tier,
		&snap.DefaultCostCents,
		&snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shipping method not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find shipping method by ID", err)
	}
	return &snap, nil
}

func (r *RatesReadStore) FindActiveShippingMethods(ctx context.Context) ([]*queries.ShippingMethodView, error) {
	rows, err := r.db.Query(ctx, findActiveShippingMethodsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find shipping methods", err)
	}
	defer rows.Close()

	var views []*queries.ShippingMethodView
	for rows.Next() {
		var v queries.ShippingMethodView
		if err := rows.Scan(&v.ID, &v.Name, &v.Tier, &v.DefaultCostCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan shipping method", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate shipping methods", err)
	}
	return views, nil
}

func (r *RatesReadStore) FindRatesByMethod(ctx context.Context, methodID uuid.UUID) ([]rates.ShippingRate, error) {
	rows, err := r.db.Query(ctx, findShippingRatesByMethodSQL, methodID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find shipping rates", err)
	}
	defer rows.Close()

	var result []rates.ShippingRate
	for rows.Next() {
		var rate rates.ShippingRate
		err := rows.Scan(
			&rate.ShippingMethodID,
			&rate.Country,
			&rate.State,
			&rate.PostalPrefix,
			&rate.MinOrderCents,
			&rate.MaxOrderCents,
			&rate.MinWeightKg,
			&rate.MaxWeightKg,
			&rate.CostCents,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan shipping rate", err)
		}
		result = append(result, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate shipping rates", err)
	}
	return result, nil
}

func (r *RatesReadStore) FindActiveTaxRates(ctx context.Context) ([]rates.TaxRate, error) {
	rows, err := r.db.Query(ctx, findActiveTaxRatesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find tax rates", err)
	}
	defer rows.Close()

	var result []rates.TaxRate
	for rows.Next() {
		var (
			rate    rates.TaxRate
			rawRate string
		)
		if err := rows.Scan(&rate.Country, &rate.State, &rate.PostalPrefix, &rawRate); err != nil {
			return nil, infra.WrapRepoErr("failed to scan tax rate", err)
		}
		value, err := decimal.NewFromString(rawRate)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to parse tax rate value", err)
		}
		rate.Rate = value
		result = append(result, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate tax rates", err)
	}
	return result, nil
}
