// Package meta provides the Pokémon TCG Pocket metagame data model and
// the clients that acquire it from external sources.
//
// Unit conventions: Share, WinRate, and matchup rates are percentages in
// the 0-100 range. Confidence-style scores elsewhere in the codebase are
// 0-1; nothing in this package uses 0-1 fractions.
package meta

import (
	"sort"
	"time"
)

// Deck represents one archetype observed in the field.
type Deck struct {
	Name    string  `json:"name"`
	Share   float64 `json:"share"`    // percentage of the observed field, 0-100
	WinRate float64 `json:"win_rate"` // aggregate win percentage, 0-100
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Ties    int     `json:"ties"`
}

// SampleSize returns the total number of recorded games for the deck.
func (d Deck) SampleSize() int {
	return d.Wins + d.Losses + d.Ties
}

// MatchupTable maps a deck name to its known win rates against opponents.
// Entries are sparse and asymmetric: A's rate versus B is estimated
// independently from B's rate versus A, and absence means "no data",
// not 50%.
type MatchupTable map[string]map[string]float64

// Rate returns the win rate of deck versus opponent and whether the
// matchup is known.
func (t MatchupTable) Rate(deck, opponent string) (float64, bool) {
	row, ok := t[deck]
	if !ok {
		return 0, false
	}
	rate, ok := row[opponent]
	return rate, ok
}

// Rates returns a copy of all known matchup rates for a deck. The copy
// keeps callers from mutating the table through the returned map.
func (t MatchupTable) Rates(deck string) map[string]float64 {
	row, ok := t[deck]
	if !ok {
		return nil
	}
	rates := make(map[string]float64, len(row))
	for opponent, rate := range row {
		rates[opponent] = rate
	}
	return rates
}

// Clone returns a deep copy of the table.
func (t MatchupTable) Clone() MatchupTable {
	if t == nil {
		return nil
	}
	clone := make(MatchupTable, len(t))
	for deck, row := range t {
		clone[deck] = make(map[string]float64, len(row))
		for opponent, rate := range row {
			clone[deck][opponent] = rate
		}
	}
	return clone
}

// Snapshot is one dated observation of the field. Shares within a
// snapshot need not sum to 100; the field may be partially observed.
type Snapshot struct {
	Date  time.Time `json:"date"`
	Decks []Deck    `json:"decks"`
}

// CanonicalOrder returns a new slice of decks sorted by share descending.
// The sort is stable, so decks with equal shares keep their input order.
// All ranking, tie-breaking and "top N" semantics in the analyzer derive
// from this ordering; the input slice is never modified.
func CanonicalOrder(decks []Deck) []Deck {
	ordered := make([]Deck, len(decks))
	copy(ordered, decks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Share > ordered[j].Share
	})
	return ordered
}
