// Package insights derives field-level readings from ranked analyses and
// snapshot history: dominance cycles, diversity indices, share trends and
// hidden gems.
package insights

import (
	"sort"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/analyzer"
)

// cycleMaxDecks caps cycle search at the top-ranked major decks. The
// triple scan is cubic, so the search must never run over an unbounded
// field; 20 decks is at most 1140 triples.
const cycleMaxDecks = 20

// Cycle is a rock-paper-scissors dominance triangle: the first deck
// dominates the second, the second the third, and the third the first.
type Cycle struct {
	Decks    [3]string `json:"decks"`
	Strength float64   `json:"strength"`
}

// DetectCycles finds dominance triangles among the top major decks
// (share >= 3.0, at most the top 20 by rank). Domination is the typed
// strength relation from the matchup profiles (win rate >= 60). A
// cycle's strength is the sum of the three shares scaled by the average
// of the three expected win rates; results are sorted strongest first.
func DetectCycles(analyses []*analyzer.Analysis) []Cycle {
	var major []*analyzer.Analysis
	for _, a := range analyses {
		if a.Deck.Share >= analyzer.MajorShareThreshold {
			major = append(major, a)
		}
		if len(major) == cycleMaxDecks {
			break
		}
	}

	var cycles []Cycle
	for i := 0; i < len(major); i++ {
		for j := i + 1; j < len(major); j++ {
			for k := j + 1; k < len(major); k++ {
				a, b, c := major[i], major[j], major[k]
				if !a.Profile.Dominates(b.Deck.Name) ||
					!b.Profile.Dominates(c.Deck.Name) ||
					!c.Profile.Dominates(a.Deck.Name) {
					continue
				}

				shareSum := a.Deck.Share + b.Deck.Share + c.Deck.Share
				avgWinRate := (a.ExpectedWinRate + b.ExpectedWinRate + c.ExpectedWinRate) / 3

				cycles = append(cycles, Cycle{
					Decks:    [3]string{a.Deck.Name, b.Deck.Name, c.Deck.Name},
					Strength: shareSum * (avgWinRate / 100),
				})
			}
		}
	}

	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].Strength > cycles[j].Strength
	})

	return cycles
}
