// Package analyzer implements the share-weighted meta scoring engine:
// coverage selection, expected win rates, tier classification,
// confidence and stability scoring, matchup profiles and lineup
// recommendation.
//
// Every operation is a pure function of its inputs. Missing or
// degenerate data falls back to documented defaults instead of failing;
// there is no error path inside the engine.
package analyzer

import (
	"sort"
	"sync"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// Analysis is the complete scoring result for one deck.
type Analysis struct {
	Deck            meta.Deck `json:"deck"`
	ExpectedWinRate float64   `json:"expected_win_rate"` // 0-100
	Tier            Tier      `json:"tier"`
	Confidence      float64   `json:"confidence"` // 0-1
	Stability       float64   `json:"stability"`  // 0-1
	Profile         Profile   `json:"profile"`

	// Matchups holds every known matchup against the rest of the field,
	// in canonical field order. Lineup building reads rates from here
	// instead of re-parsing formatted profile labels.
	Matchups []Matchup `json:"matchups"`
}

// Analyzer scores one immutable snapshot of the field. The constructor
// derives the canonical ordering once and deep-copies the matchup table,
// so analyses can never observe mutation of the caller's data.
type Analyzer struct {
	field    []meta.Deck
	matchups meta.MatchupTable
}

// New creates an Analyzer for the given field and matchup table.
func New(decks []meta.Deck, matchups meta.MatchupTable) *Analyzer {
	return &Analyzer{
		field:    meta.CanonicalOrder(decks),
		matchups: matchups.Clone(),
	}
}

// Field returns the analyzed field in canonical (share-descending) order.
func (a *Analyzer) Field() []meta.Deck {
	field := make([]meta.Deck, len(a.field))
	copy(field, a.field)
	return field
}

// Analyze scores a single deck by name. The second return value is false
// when the deck is not part of the field.
func (a *Analyzer) Analyze(name string) (*Analysis, bool) {
	for i := range a.field {
		if a.field[i].Name == name {
			return a.analyzeDeck(a.field[i]), true
		}
	}
	return nil, false
}

// AnalyzeAll scores every deck in the field and returns the analyses
// ranked by expected win rate descending, ties broken by canonical
// order. Per-deck scoring is independent, so the loop fans out across
// goroutines; results land in an index-addressed slice, which keeps the
// output deterministic.
func (a *Analyzer) AnalyzeAll() []*Analysis {
	analyses := make([]*Analysis, len(a.field))

	var wg sync.WaitGroup
	for i := range a.field {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			analyses[i] = a.analyzeDeck(a.field[i])
		}(i)
	}
	wg.Wait()

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].ExpectedWinRate > analyses[j].ExpectedWinRate
	})

	return analyses
}

func (a *Analyzer) analyzeDeck(deck meta.Deck) *Analysis {
	ewr := ExpectedWinRate(deck.Name, a.field, a.matchups)
	return &Analysis{
		Deck:            deck,
		ExpectedWinRate: ewr,
		Tier:            TierFor(ewr),
		Confidence:      ConfidenceFor(deck),
		Stability:       StabilityFor(deck.Name, a.matchups),
		Profile:         ProfileFor(deck.Name, a.field, a.matchups),
		Matchups:        KnownMatchups(deck.Name, a.field, a.matchups),
	}
}
