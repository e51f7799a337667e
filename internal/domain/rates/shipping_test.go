//go:build unit

package rates_test

import (
	"testing"

	"storefront/internal/domain/rates"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveShippingCost(t *testing.T) {
	t.Run("resolved rate plus zone surcharge", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("US", ptr("CA"), nil, 450),
		}

		// CA is a coastal state: +200 for standard tier
		cost := rates.ResolveShippingCost(candidates, usTarget(), 999, rates.TierStandard)
		assert.Equal(t, int64(650), cost)
	})

	t.Run("default cost used when no rate matches", func(t *testing.T) {
		target := usTarget()
		target.State = "NV" // plain domestic, no surcharge on standard
		cost := rates.ResolveShippingCost(nil, target, 500, rates.TierStandard)
		assert.Equal(t, int64(500), cost)
	})

	t.Run("express tier carries a higher surcharge", func(t *testing.T) {
		target := usTarget()
		target.State = "NV"
		cost := rates.ResolveShippingCost(nil, target, 500, rates.TierExpress)
		assert.Equal(t, int64(1000), cost)
	})

	t.Run("egypt zone surcharge", func(t *testing.T) {
		target := rates.Target{Country: "Egypt", AmountCents: 2000}
		cost := rates.ResolveShippingCost(nil, target, 500, rates.TierStandard)
		assert.Equal(t, int64(1500), cost)
	})

	t.Run("international fallback zone", func(t *testing.T) {
		target := rates.Target{Country: "FR", AmountCents: 2000}
		cost := rates.ResolveShippingCost(nil, target, 500, rates.TierNextDay)
		assert.Equal(t, int64(5500), cost)
	})
}

func TestDistanceSurchargeCents(t *testing.T) {
	cases := []struct {
		name    string
		country string
		state   string
		tier    rates.MethodTier
		want    int64
	}{
		{"US domestic standard", "US", "AZ", rates.TierStandard, 0},
		{"US coastal standard", "US", "NY", rates.TierStandard, 200},
		{"US coastal next day", "US", "FL", rates.TierNextDay, 1800},
		{"US central express", "US", "TX", rates.TierExpress, 900},
		{"egypt express", "Egypt", "", rates.TierExpress, 2500},
		{"international standard", "JP", "", rates.TierStandard, 1500},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, rates.DistanceSurchargeCents(c.country, c.state, c.tier))
		})
	}
}

func TestResolveTaxRate(t *testing.T) {
	caRate := rates.TaxRate{Country: "US", State: ptr("CA"), Rate: decimal.NewFromFloat(0.0725)}
	usRate := rates.TaxRate{Country: "US", Rate: decimal.NewFromFloat(0.05)}

	t.Run("state rate beats country rate", func(t *testing.T) {
		got := rates.ResolveTaxRate([]rates.TaxRate{usRate, caRate}, usTarget())
		assert.True(t, got.Equal(decimal.NewFromFloat(0.0725)))
	})

	t.Run("country rate when state misses", func(t *testing.T) {
		target := usTarget()
		target.State = "NV"
		got := rates.ResolveTaxRate([]rates.TaxRate{usRate, caRate}, target)
		assert.True(t, got.Equal(decimal.NewFromFloat(0.05)))
	})

	t.Run("zero when nothing configured", func(t *testing.T) {
		target := usTarget()
		got := rates.ResolveTaxRate(nil, target)
		assert.True(t, got.IsZero())
	})

	t.Run("egypt always gets the statutory VAT", func(t *testing.T) {
		egyptian := rates.TaxRate{Country: "Egypt", Rate: decimal.NewFromFloat(0.05)}
		target := rates.Target{Country: "Egypt", AmountCents: 1000}

		got := rates.ResolveTaxRate([]rates.TaxRate{egyptian}, target)
		require.True(t, got.Equal(rates.EgyptVATRate))
		assert.True(t, got.Equal(decimal.NewFromFloat(0.14)))
	})
}

func TestNewMethodTier(t *testing.T) {
	assert.Equal(t, rates.TierExpress, rates.NewMethodTier("express"))
	assert.Equal(t, rates.TierStandard, rates.NewMethodTier("warp_speed"))
	assert.Equal(t, rates.TierStandard, rates.NewMethodTier(""))
}
