package analyzer

import "github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"

// ExpectedWinRate computes a deck's share-weighted win rate against the
// analyzed field, as a 0-100 percentage.
//
// Each opponent contributes its known matchup rate weighted by its share.
// Two documented fallbacks apply:
//   - An unknown matchup is assumed to perform like the deck's own
//     aggregate win rate.
//   - Field shares rarely sum to 100; the unobserved remainder is treated
//     as a generic opponent against which the deck performs at its
//     aggregate win rate.
//
// A deck that is not part of the field scores 0; callers are expected to
// validate membership first. If every weight is zero the deck's own win
// rate is returned.
func ExpectedWinRate(name string, field []meta.Deck, matchups meta.MatchupTable) float64 {
	var self *meta.Deck
	for i := range field {
		if field[i].Name == name {
			self = &field[i]
			break
		}
	}
	if self == nil {
		return 0
	}

	var weightedSum, totalWeight, observedShare float64
	for _, opponent := range field {
		observedShare += opponent.Share
		if opponent.Name == name {
			continue
		}

		rate, known := matchups.Rate(name, opponent.Name)
		if !known {
			rate = self.WinRate
		}
		weightedSum += rate * opponent.Share
		totalWeight += opponent.Share
	}

	// The rest of the real-world field, beyond the analyzed decks.
	if remaining := 100 - observedShare; remaining > 0 {
		weightedSum += self.WinRate * remaining
		totalWeight += remaining
	}

	if totalWeight == 0 {
		return self.WinRate
	}
	return weightedSum / totalWeight
}
