package insights

import (
	"math"
	"testing"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/analyzer"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// mkRanked builds an analysis with an explicit strength list.
func mkRanked(name string, share, ewr float64, beats ...string) *analyzer.Analysis {
	a := &analyzer.Analysis{
		Deck:            meta.Deck{Name: name, Share: share},
		ExpectedWinRate: ewr,
	}
	for _, opponent := range beats {
		a.Profile.Strengths = append(a.Profile.Strengths, analyzer.Matchup{Opponent: opponent, Rate: 65})
	}
	return a
}

func TestDetectCycles(t *testing.T) {
	analyses := []*analyzer.Analysis{
		mkRanked("Pikachu ex", 20, 55, "Mewtwo ex"),
		mkRanked("Mewtwo ex", 15, 52, "Charizard ex"),
		mkRanked("Charizard ex", 10, 49, "Pikachu ex"),
		mkRanked("Celebi ex", 8, 51), // beats nobody, in no cycle
	}

	cycles := DetectCycles(analyses)

	if len(cycles) != 1 {
		t.Fatalf("got %d cycles, want 1", len(cycles))
	}

	cycle := cycles[0]
	want := [3]string{"Pikachu ex", "Mewtwo ex", "Charizard ex"}
	if cycle.Decks != want {
		t.Errorf("Decks = %v, want %v", cycle.Decks, want)
	}

	// (20+15+10) * ((55+52+49)/3 / 100) = 45 * 0.52
	if math.Abs(cycle.Strength-23.4) > 1e-9 {
		t.Errorf("Strength = %v, want 23.4", cycle.Strength)
	}
}

func TestDetectCyclesNoCycle(t *testing.T) {
	// A beats B beats C, but C does not beat A.
	analyses := []*analyzer.Analysis{
		mkRanked("Pikachu ex", 20, 55, "Mewtwo ex"),
		mkRanked("Mewtwo ex", 15, 52, "Charizard ex"),
		mkRanked("Charizard ex", 10, 49),
	}

	if cycles := DetectCycles(analyses); len(cycles) != 0 {
		t.Errorf("expected no cycles, got %+v", cycles)
	}
}

func TestDetectCyclesIgnoresMinorDecks(t *testing.T) {
	analyses := []*analyzer.Analysis{
		mkRanked("Pikachu ex", 20, 55, "Mewtwo ex"),
		mkRanked("Mewtwo ex", 15, 52, "Charizard ex"),
		mkRanked("Charizard ex", 2.5, 49, "Pikachu ex"), // below share threshold
	}

	if cycles := DetectCycles(analyses); len(cycles) != 0 {
		t.Errorf("minor decks must not participate in cycles, got %+v", cycles)
	}
}

func TestDetectCyclesSortedByStrength(t *testing.T) {
	// Two triangles: {A,B,C} and the weaker {B,D,E}.
	analyses := []*analyzer.Analysis{
		mkRanked("A", 20, 55, "B"),
		mkRanked("B", 15, 52, "C", "D"),
		mkRanked("C", 10, 49, "A"),
		mkRanked("D", 4, 50, "E"),
		mkRanked("E", 3.5, 48, "B"),
	}

	cycles := DetectCycles(analyses)

	if len(cycles) < 2 {
		t.Fatalf("expected at least 2 cycles, got %d", len(cycles))
	}
	for i := 1; i < len(cycles); i++ {
		if cycles[i].Strength > cycles[i-1].Strength {
			t.Errorf("cycles not sorted by strength: %v before %v",
				cycles[i-1].Strength, cycles[i].Strength)
		}
	}
}
