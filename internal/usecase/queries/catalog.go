package queries

import (
	"context"

	"github.com/google/uuid"
)

const MaxListLimit = 100

type ShippingMethodView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Tier             string    `json:"tier"`
	DefaultCostCents int64     `json:"default_cost_cents"`
}

type CatalogQueries interface {
	ListShippingMethods(ctx context.Context) ([]*ShippingMethodView, error)
}

type CatalogReadStore interface {
	FindActiveShippingMethods(ctx context.Context) ([]*ShippingMethodView, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{readStore: readStore}
}

func (q *catalogQueriesImpl) ListShippingMethods(ctx context.Context) ([]*ShippingMethodView, error) {
	return q.readStore.FindActiveShippingMethods(ctx)
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default limit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
