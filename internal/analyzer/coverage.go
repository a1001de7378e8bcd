package analyzer

import "github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"

// SelectByCoverage returns the smallest share-descending prefix of decks
// whose cumulative share reaches targetPct, including the deck that
// crosses the threshold. A non-empty input always yields at least one
// deck, even for a zero or negative target, so downstream analysis never
// runs on an empty field by accident. The input slice is not modified.
func SelectByCoverage(decks []meta.Deck, targetPct float64) []meta.Deck {
	if len(decks) == 0 {
		return nil
	}

	ordered := meta.CanonicalOrder(decks)

	covered := 0.0
	for i, deck := range ordered {
		covered += deck.Share
		if covered >= targetPct {
			return ordered[:i+1]
		}
	}

	// Target was never reached; the whole field is the best we can do.
	return ordered
}
