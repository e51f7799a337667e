package rates

// Tiered most-specific-match rate lookup, shared by shipping and tax
// resolution. Candidates are tried from the narrowest geographic tier to the
// universal default:
//
//  1. country + state + postal-code prefix
//  2. country + state
//  3. country
//  4. universal default (empty country)
//
// Amount/weight bounds are inclusive and a nil bound is unbounded on that
// side. When several candidates match the same tier the one with the
// narrowest bounds wins (smallest amount span, then smallest weight span,
// then the first encountered).

const PostalPrefixLen = 3

type Target struct {
	Country     string
	State       string
	PostalCode  string
	AmountCents int64
	WeightKg    float64
}

func (t Target) postalPrefix() string {
	if len(t.PostalCode) < PostalPrefixLen {
		return t.PostalCode
	}
	return t.PostalCode[:PostalPrefixLen]
}

type Bounds struct {
	MinAmountCents *int64
	MaxAmountCents *int64
	MinWeightKg    *float64
	MaxWeightKg    *float64
}

func (b Bounds) Contains(amountCents int64, weightKg float64) bool {
	if b.MinAmountCents != nil && amountCents < *b.MinAmountCents {
		return false
	}
	if b.MaxAmountCents != nil && amountCents > *b.MaxAmountCents {
		return false
	}
	if b.MinWeightKg != nil && weightKg < *b.MinWeightKg {
		return false
	}
	if b.MaxWeightKg != nil && weightKg > *b.MaxWeightKg {
		return false
	}
	return true
}

const unbounded = int64(1) << 62

func (b Bounds) amountSpan() int64 {
	low := int64(0)
	if b.MinAmountCents != nil {
		low = *b.MinAmountCents
	}
	high := unbounded
	if b.MaxAmountCents != nil {
		high = *b.MaxAmountCents
	}
	return high - low
}

func (b Bounds) weightSpan() float64 {
	low := 0.0
	if b.MinWeightKg != nil {
		low = *b.MinWeightKg
	}
	high := float64(unbounded)
	if b.MaxWeightKg != nil {
		high = *b.MaxWeightKg
	}
	return high - low
}

// Candidate is the record shape shared by shipping and tax rates.
type Candidate interface {
	RateCountry() string
	RateState() *string
	RatePostalPrefix() *string
	RateBounds() Bounds
}

type tierPredicate func(c Candidate, t Target) bool

var tiers = []tierPredicate{
	func(c Candidate, t Target) bool {
		if t.PostalCode == "" {
			return false
		}
		return c.RateCountry() == t.Country &&
			c.RateState() != nil && *c.RateState() == t.State &&
			c.RatePostalPrefix() != nil && *c.RatePostalPrefix() == t.postalPrefix()
	},
	func(c Candidate, t Target) bool {
		return c.RateCountry() == t.Country &&
			c.RateState() != nil && *c.RateState() == t.State &&
			c.RatePostalPrefix() == nil
	},
	func(c Candidate, t Target) bool {
		return c.RateCountry() == t.Country &&
			c.RateState() == nil && c.RatePostalPrefix() == nil
	},
	func(c Candidate, t Target) bool {
		return c.RateCountry() == ""
	},
}

// Resolve returns the single most specific candidate matching the target, or
// false when no tier yields a match. Callers substitute their own hard
// default (a method's base cost, a zero tax rate) on a miss.
func Resolve[T Candidate](candidates []T, target Target) (T, bool) {
	var zero T

	for _, tier := range tiers {
		best := -1
		for i, c := range candidates {
			if !tier(c, target) {
				continue
			}
			if !c.RateBounds().Contains(target.AmountCents, target.WeightKg) {
				continue
			}
			if best < 0 || narrower(c.RateBounds(), candidates[best].RateBounds()) {
				best = i
			}
		}
		if best >= 0 {
			return candidates[best], true
		}
	}

	return zero, false
}

func narrower(a, b Bounds) bool {
	if a.amountSpan() != b.amountSpan() {
		return a.amountSpan() < b.amountSpan()
	}
	return a.weightSpan() < b.weightSpan()
}
