package insights

import "github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/analyzer"

// Hidden gem thresholds: a deck the field under-plays but that still
// scores well against it.
const (
	gemMaxShare   = 5.0
	gemMinWinRate = 53.0
)

// HiddenGems returns analyses for decks with share under 5 but an
// expected win rate of at least 53, in rank order. These are the
// under-used decks worth surfacing in reports.
func HiddenGems(analyses []*analyzer.Analysis) []*analyzer.Analysis {
	var gems []*analyzer.Analysis
	for _, a := range analyses {
		if a.Deck.Share < gemMaxShare && a.ExpectedWinRate >= gemMinWinRate {
			gems = append(gems, a)
		}
	}
	return gems
}
