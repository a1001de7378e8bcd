package analyzer

import (
	"fmt"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// Matchup favorability thresholds, as 0-100 win rates. Strength and
// weakness bound the strong relations used for profiles and cycle
// detection; favorable and unfavorable bound the looser relations used
// for lineup building.
const (
	StrengthThreshold    = 60.0
	WeaknessThreshold    = 40.0
	FavorableThreshold   = 55.0
	UnfavorableThreshold = 45.0

	// MajorShareThreshold is the minimum share for a deck to count as a
	// major part of the field.
	MajorShareThreshold = 3.0
)

// Matchup is one known pairing from a deck's perspective.
type Matchup struct {
	Opponent string  `json:"opponent"`
	Rate     float64 `json:"rate"` // win rate versus the opponent, 0-100
}

// Label formats the matchup for reports, e.g. "Pikachu ex (62.5%)".
func (m Matchup) Label() string {
	return fmt.Sprintf("%s (%.1f%%)", m.Opponent, m.Rate)
}

// Profile buckets a deck's known matchups against the major field into
// strengths (win rate >= 60) and weaknesses (win rate <= 40). Buckets
// keep the major-deck iteration order rather than sorting by rate, so
// repeated runs produce identical report output.
type Profile struct {
	Strengths  []Matchup `json:"strengths"`
	Weaknesses []Matchup `json:"weaknesses"`
}

// Dominates reports whether the profiled deck holds a strength-level
// matchup against the named opponent. Lineup and cycle logic use this
// typed lookup; nothing re-parses the formatted labels.
func (p Profile) Dominates(opponent string) bool {
	for _, m := range p.Strengths {
		if m.Opponent == opponent {
			return true
		}
	}
	return false
}

// KnownMatchups returns every known matchup for a deck against the rest
// of the field, in canonical field order.
func KnownMatchups(name string, field []meta.Deck, matchups meta.MatchupTable) []Matchup {
	var known []Matchup
	for _, opponent := range field {
		if opponent.Name == name {
			continue
		}
		if rate, ok := matchups.Rate(name, opponent.Name); ok {
			known = append(known, Matchup{Opponent: opponent.Name, Rate: rate})
		}
	}
	return known
}

// ProfileFor classifies a deck's matchups against every major deck in
// the field (share >= 3.0, excluding the deck itself). Unknown matchups
// are skipped, not defaulted.
func ProfileFor(name string, field []meta.Deck, matchups meta.MatchupTable) Profile {
	var profile Profile
	for _, opponent := range field {
		if opponent.Name == name || opponent.Share < MajorShareThreshold {
			continue
		}

		rate, known := matchups.Rate(name, opponent.Name)
		if !known {
			continue
		}

		switch {
		case rate >= StrengthThreshold:
			profile.Strengths = append(profile.Strengths, Matchup{Opponent: opponent.Name, Rate: rate})
		case rate <= WeaknessThreshold:
			profile.Weaknesses = append(profile.Weaknesses, Matchup{Opponent: opponent.Name, Rate: rate})
		}
	}
	return profile
}
