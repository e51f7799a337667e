package rates

import "github.com/shopspring/decimal"

// Hard-coded geography tables. These are business constants, not data-driven
// configuration: no override is read from the store. Keeping them in one
// place lets them be replaced with configured rates later without touching
// the resolver.

const (
	CountryEgypt = "Egypt"
	CountryUS    = "US"
)

// EgyptVATRate is the statutory flat VAT applied to all Egyptian orders.
var EgyptVATRate = decimal.NewFromFloat(0.14)

type zone int

const (
	zoneUSDomestic zone = iota
	zoneUSCoastal
	zoneUSCentral
	zoneEgypt
	zoneInternational
)

var coastalStates = map[string]bool{
	"CA": true, "OR": true, "WA": true,
	"NY": true, "NJ": true, "FL": true,
	"ME": true, "MA": true, "SC": true,
}

var centralStates = map[string]bool{
	"TX": true, "OK": true, "KS": true,
	"NE": true, "MO": true, "IA": true,
	"CO": true, "SD": true, "ND": true,
}

func classify(country, state string) zone {
	switch country {
	case CountryEgypt:
		return zoneEgypt
	case CountryUS:
		switch {
		case coastalStates[state]:
			return zoneUSCoastal
		case centralStates[state]:
			return zoneUSCentral
		default:
			return zoneUSDomestic
		}
	default:
		return zoneInternational
	}
}

var surchargeCents = map[zone]map[MethodTier]int64{
	zoneUSDomestic: {
		TierStandard: 0,
		TierExpress:  500,
		TierNextDay:  1500,
	},
	zoneUSCoastal: {
		TierStandard: 200,
		TierExpress:  700,
		TierNextDay:  1800,
	},
	zoneUSCentral: {
		TierStandard: 300,
		TierExpress:  900,
		TierNextDay:  2000,
	},
	zoneEgypt: {
		TierStandard: 1000,
		TierExpress:  2500,
		TierNextDay:  4500,
	},
	zoneInternational: {
		TierStandard: 1500,
		TierExpress:  3000,
		TierNextDay:  5000,
	},
}

// DistanceSurchargeCents returns the flat surcharge added on top of the
// resolved base shipping cost for a destination and method tier.
func DistanceSurchargeCents(country, state string, tier MethodTier) int64 {
	table, ok := surchargeCents[classify(country, state)]
	if !ok {
		return 0
	}
	return table[tier]
}
