//go:build unit

package rates_test

import (
	"testing"

	"storefront/internal/domain/rates"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func rate(country string, state, prefix *string, cost int64) rates.ShippingRate {
	return rates.ShippingRate{
		ShippingMethodID: uuid.New(),
		Country:          country,
		State:            state,
		PostalPrefix:     prefix,
		CostCents:        cost,
	}
}

func usTarget() rates.Target {
	return rates.Target{
		Country:     "US",
		State:       "CA",
		PostalCode:  "94105",
		AmountCents: 2000,
		WeightKg:    1.0,
	}
}

func TestResolve(t *testing.T) {
	t.Run("most specific tier wins", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("", nil, nil, 400),
			rate("US", nil, nil, 300),
			rate("US", ptr("CA"), nil, 200),
			rate("US", ptr("CA"), ptr("941"), 100),
		}

		got, ok := rates.Resolve(candidates, usTarget())
		require.True(t, ok)
		assert.Equal(t, int64(100), got.CostCents)
	})

	t.Run("falls through to state tier when prefix misses", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("US", ptr("CA"), ptr("900"), 100),
			rate("US", ptr("CA"), nil, 200),
		}

		got, ok := rates.Resolve(candidates, usTarget())
		require.True(t, ok)
		assert.Equal(t, int64(200), got.CostCents)
	})

	t.Run("falls through to country tier", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("US", ptr("NY"), nil, 100),
			rate("US", nil, nil, 300),
		}

		got, ok := rates.Resolve(candidates, usTarget())
		require.True(t, ok)
		assert.Equal(t, int64(300), got.CostCents)
	})

	t.Run("universal default matches any destination", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("", nil, nil, 400),
		}

		target := usTarget()
		target.Country = "JP"
		got, ok := rates.Resolve(candidates, target)
		require.True(t, ok)
		assert.Equal(t, int64(400), got.CostCents)
	})

	t.Run("no match reports a miss", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("CA", nil, nil, 300),
		}

		_, ok := rates.Resolve(candidates, usTarget())
		assert.False(t, ok)
	})

	t.Run("empty postal code never matches a prefix rate", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("US", ptr("CA"), ptr("941"), 100),
			rate("US", ptr("CA"), nil, 200),
		}

		target := usTarget()
		target.PostalCode = ""
		got, ok := rates.Resolve(candidates, target)
		require.True(t, ok)
		assert.Equal(t, int64(200), got.CostCents)
	})

	t.Run("short postal code compares as-is", func(t *testing.T) {
		candidates := []rates.ShippingRate{
			rate("US", ptr("CA"), ptr("94"), 100),
		}

		target := usTarget()
		target.PostalCode = "94"
		got, ok := rates.Resolve(candidates, target)
		require.True(t, ok)
		assert.Equal(t, int64(100), got.CostCents)
	})

	t.Run("bounds are inclusive on both ends", func(t *testing.T) {
		r := rate("US", nil, nil, 100)
		r.MinOrderCents = ptr(int64(2000))
		r.MaxOrderCents = ptr(int64(3000))
		candidates := []rates.ShippingRate{r}

		atMin := usTarget()
		atMin.AmountCents = 2000
		_, ok := rates.Resolve(candidates, atMin)
		assert.True(t, ok)

		atMax := usTarget()
		atMax.AmountCents = 3000
		_, ok = rates.Resolve(candidates, atMax)
		assert.True(t, ok)

		below := usTarget()
		below.AmountCents = 1999
		_, ok = rates.Resolve(candidates, below)
		assert.False(t, ok)

		above := usTarget()
		above.AmountCents = 3001
		_, ok = rates.Resolve(candidates, above)
		assert.False(t, ok)
	})

	t.Run("weight bounds filter candidates", func(t *testing.T) {
		light := rate("US", nil, nil, 100)
		light.MaxWeightKg = ptr(0.5)
		heavy := rate("US", nil, nil, 900)
		heavy.MinWeightKg = ptr(0.6)
		candidates := []rates.ShippingRate{light, heavy}

		target := usTarget()
		target.WeightKg = 2.0
		got, ok := rates.Resolve(candidates, target)
		require.True(t, ok)
		assert.Equal(t, int64(900), got.CostCents)
	})

	t.Run("narrowest bounds win within a tier", func(t *testing.T) {
		wide := rate("US", nil, nil, 300)
		wide.MinOrderCents = ptr(int64(0))
		wide.MaxOrderCents = ptr(int64(100000))
		narrow := rate("US", nil, nil, 150)
		narrow.MinOrderCents = ptr(int64(1000))
		narrow.MaxOrderCents = ptr(int64(5000))
		candidates := []rates.ShippingRate{wide, narrow}

		got, ok := rates.Resolve(candidates, usTarget())
		require.True(t, ok)
		assert.Equal(t, int64(150), got.CostCents)
	})

	t.Run("unbounded candidate loses to bounded one", func(t *testing.T) {
		unbounded := rate("US", nil, nil, 300)
		bounded := rate("US", nil, nil, 150)
		bounded.MaxOrderCents = ptr(int64(5000))
		candidates := []rates.ShippingRate{unbounded, bounded}

		got, ok := rates.Resolve(candidates, usTarget())
		require.True(t, ok)
		assert.Equal(t, int64(150), got.CostCents)
	})

	t.Run("first candidate wins a full tie", func(t *testing.T) {
		first := rate("US", nil, nil, 100)
		second := rate("US", nil, nil, 200)
		candidates := []rates.ShippingRate{first, second}

		got, ok := rates.Resolve(candidates, usTarget())
		require.True(t, ok)
		assert.Equal(t, int64(100), got.CostCents)
	})
}
