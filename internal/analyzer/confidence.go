package analyzer

import (
	"math"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// ConfidenceFor derives a 0-1 confidence score from a deck's sample size
// (wins + losses + ties). The bands are discrete; values are never
// interpolated between them.
func ConfidenceFor(deck meta.Deck) float64 {
	games := deck.SampleSize()
	switch {
	case games >= 1000:
		return 1.0
	case games >= 500:
		return 0.9
	case games >= 200:
		return 0.8
	case games >= 100:
		return 0.7
	case games >= 50:
		return 0.6
	default:
		return 0.5
	}
}

// StabilityFor scores how tightly a deck's known matchup win rates
// cluster, as a 0-1 value. A deck with no matchup data scores a neutral
// 0.5. A population standard deviation of 20 percentage points or more
// scores 0.
func StabilityFor(name string, matchups meta.MatchupTable) float64 {
	rates := matchups.Rates(name)
	if len(rates) == 0 {
		return 0.5
	}

	var sum float64
	for _, rate := range rates {
		sum += rate
	}
	mean := sum / float64(len(rates))

	var variance float64
	for _, rate := range rates {
		diff := rate - mean
		variance += diff * diff
	}
	stdDev := math.Sqrt(variance / float64(len(rates)))

	return math.Max(0, math.Min(1, 1-stdDev/20))
}
