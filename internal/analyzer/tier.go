package analyzer

// Tier is a discrete label bucketing expected win rate.
type Tier string

// Tiers from strongest to weakest.
const (
	TierSS    Tier = "SS"
	TierS     Tier = "S"
	TierAPlus Tier = "A+"
	TierA     Tier = "A"
	TierB     Tier = "B"
	TierC     Tier = "C"
)

// tierThresholds is scanned highest-first; each tier is inclusive on its
// lower bound, which keeps boundary values unambiguous (exactly 57.0 is
// SS, 56.999 is S).
var tierThresholds = []struct {
	min  float64
	tier Tier
}{
	{57, TierSS},
	{55, TierS},
	{53, TierAPlus},
	{51, TierA},
	{49, TierB},
}

// TierFor maps an expected win rate (0-100) to its tier.
func TierFor(expectedWinRate float64) Tier {
	for _, t := range tierThresholds {
		if expectedWinRate >= t.min {
			return t.tier
		}
	}
	return TierC
}
