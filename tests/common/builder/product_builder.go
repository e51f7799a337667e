//go:build unit || e2e

package builder

import (
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductBuilder struct {
	Name                       string
	PriceCents                 int64
	Stock                      int32
	WeightKg                   float64
	FreeShippingThresholdCents *int64
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		Name:       "Test Product",
		PriceCents: 1000,
		Stock:      10,
		WeightKg:   0.5,
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

func (p *ProductBuilder) BuildSnapshot() *shared.ProductSnapshot {
	return &shared.ProductSnapshot{
		ID:                         uuid.New(),
		Name:                       p.Name,
		PriceCents:                 p.PriceCents,
		Stock:                      p.Stock,
		WeightKg:                   p.WeightKg,
		FreeShippingThresholdCents: p.FreeShippingThresholdCents,
	}
}

// Fluent builder methods
func (p *ProductBuilder) WithName(name string) *ProductBuilder {
	p.Name = name
	return p
}

func (p *ProductBuilder) WithPriceCents(cents int64) *ProductBuilder {
	p.PriceCents = cents
	return p
}

func (p *ProductBuilder) WithStock(stock int32) *ProductBuilder {
	p.Stock = stock
	return p
}

func (p *ProductBuilder) WithWeightKg(weight float64) *ProductBuilder {
	p.WeightKg = weight
	return p
}

func (p *ProductBuilder) WithFreeShippingThreshold(cents int64) *ProductBuilder {
	p.FreeShippingThresholdCents = &cents
	return p
}

func (p *ProductBuilder) AsOutOfStock() *ProductBuilder {
	p.Stock = 0
	return p
}
