package analyzer

import "sort"

// Lineup slot thresholds.
const (
	subMaxRank       = 10   // sub candidates come from ranks 2-10 inclusive
	subMinWinRate    = 51.0 // minimum expected win rate for the sub slot
	metaMaxShare     = 5.0  // meta picks must be under-represented
	metaMinWinRate   = 53.0 // ...but still strong against the field
	lineupTopEntries = 3    // favorable/unfavorable matchups carried by main
)

// Lineup is a three-slot tournament recommendation. Sub and Meta are nil
// when no deck qualifies; that is an expected outcome, not an error.
type Lineup struct {
	Main *Analysis `json:"main"`

	// Main's best and worst matchups (favorable >= 55, unfavorable
	// <= 45), at most three of each, sorted by rate.
	MainFavorable   []Matchup `json:"main_favorable"`
	MainUnfavorable []Matchup `json:"main_unfavorable"`

	Sub  *Analysis `json:"sub,omitempty"`
	Meta *Analysis `json:"meta,omitempty"`
}

// RecommendLineup composes a lineup from analyses ranked by expected win
// rate descending:
//
//   - main is the top-ranked analysis.
//   - sub is the first of ranks 2-10 with an expected win rate of at
//     least 51 that dominates one of main's weakness decks, so the pair
//     covers each other.
//   - meta is the first remaining deck with share < 5 and expected win
//     rate >= 53, a strong pick the field is not prepared for.
//
// Pure function of the analysis list; the list is not modified.
func RecommendLineup(analyses []*Analysis) Lineup {
	if len(analyses) == 0 {
		return Lineup{}
	}

	main := analyses[0]
	lineup := Lineup{
		Main:            main,
		MainFavorable:   topFavorable(main.Matchups),
		MainUnfavorable: topUnfavorable(main.Matchups),
	}

	lineup.Sub = pickSub(analyses, main)
	lineup.Meta = pickMeta(analyses, main, lineup.Sub)

	return lineup
}

// pickSub finds a deck that covers main's weaknesses.
func pickSub(analyses []*Analysis, main *Analysis) *Analysis {
	limit := subMaxRank
	if limit > len(analyses) {
		limit = len(analyses)
	}

	for _, candidate := range analyses[1:limit] {
		if candidate.ExpectedWinRate < subMinWinRate {
			continue
		}
		for _, weakness := range main.Profile.Weaknesses {
			if candidate.Profile.Dominates(weakness.Opponent) {
				return candidate
			}
		}
	}
	return nil
}

// pickMeta finds an under-played deck that still scores well.
func pickMeta(analyses []*Analysis, main, sub *Analysis) *Analysis {
	for _, candidate := range analyses {
		if candidate == main || candidate == sub {
			continue
		}
		if candidate.Deck.Share < metaMaxShare && candidate.ExpectedWinRate >= metaMinWinRate {
			return candidate
		}
	}
	return nil
}

func topFavorable(matchups []Matchup) []Matchup {
	var favorable []Matchup
	for _, m := range matchups {
		if m.Rate >= FavorableThreshold {
			favorable = append(favorable, m)
		}
	}
	sort.SliceStable(favorable, func(i, j int) bool {
		return favorable[i].Rate > favorable[j].Rate
	})
	if len(favorable) > lineupTopEntries {
		favorable = favorable[:lineupTopEntries]
	}
	return favorable
}

func topUnfavorable(matchups []Matchup) []Matchup {
	var unfavorable []Matchup
	for _, m := range matchups {
		if m.Rate <= UnfavorableThreshold {
			unfavorable = append(unfavorable, m)
		}
	}
	sort.SliceStable(unfavorable, func(i, j int) bool {
		return unfavorable[i].Rate < unfavorable[j].Rate
	})
	if len(unfavorable) > lineupTopEntries {
		unfavorable = unfavorable[:lineupTopEntries]
	}
	return unfavorable
}
