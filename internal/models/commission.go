package models

// Commission tiers, in cents. A sale at or below a threshold pays the rate
// for that tier; everything above the last threshold pays 4%.
const (
	commissionTier1 = 100_000   // 10%
	commissionTier2 = 200_000   // 7.5%
	commissionTier3 = 500_000   // 6%
	commissionTier4 = 1_000_000 // 5%
)

// Commission returns the agent commission in cents for a sale price in
// cents. Integer arithmetic throughout, truncating toward zero.
func Commission(priceCents int64) int64 {
	switch {
	case priceCents <= commissionTier1:
		return priceCents * 10 / 100
	case priceCents <= commissionTier2:
		return priceCents * 75 / 1000
	case priceCents <= commissionTier3:
		return priceCents * 6 / 100
	case priceCents <= commissionTier4:
		return priceCents * 5 / 100
	default:
		return priceCents * 4 / 100
	}
}
