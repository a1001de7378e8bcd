package meta

import "testing"

func TestCanonicalOrder(t *testing.T) {
	decks := []Deck{
		{Name: "Celebi ex", Share: 8.2},
		{Name: "Pikachu ex", Share: 21.5},
		{Name: "Mewtwo ex", Share: 18.3},
		{Name: "Starmie ex", Share: 8.2},
	}

	ordered := CanonicalOrder(decks)

	wantOrder := []string{"Pikachu ex", "Mewtwo ex", "Celebi ex", "Starmie ex"}
	for i, want := range wantOrder {
		if ordered[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, ordered[i].Name, want)
		}
	}

	// Ties keep input order (Celebi before Starmie).
	if ordered[2].Name != "Celebi ex" || ordered[3].Name != "Starmie ex" {
		t.Error("equal shares should preserve input order")
	}

	// The input slice must not be touched.
	if decks[0].Name != "Celebi ex" {
		t.Error("input slice was modified")
	}
}

func TestCanonicalOrderEmpty(t *testing.T) {
	if got := CanonicalOrder(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d decks", len(got))
	}
}

func TestDeckSampleSize(t *testing.T) {
	deck := Deck{Wins: 120, Losses: 80, Ties: 5}
	if got := deck.SampleSize(); got != 205 {
		t.Errorf("SampleSize() = %d, want 205", got)
	}
}

func TestMatchupTableRate(t *testing.T) {
	table := MatchupTable{
		"Pikachu ex": {"Mewtwo ex": 58.5},
	}

	rate, ok := table.Rate("Pikachu ex", "Mewtwo ex")
	if !ok || rate != 58.5 {
		t.Errorf("Rate() = %v, %v; want 58.5, true", rate, ok)
	}

	if _, ok := table.Rate("Pikachu ex", "Celebi ex"); ok {
		t.Error("unknown opponent should not be known")
	}

	if _, ok := table.Rate("Celebi ex", "Pikachu ex"); ok {
		t.Error("unknown deck should not be known")
	}
}

func TestMatchupTableRatesReturnsCopy(t *testing.T) {
	table := MatchupTable{
		"Pikachu ex": {"Mewtwo ex": 58.5},
	}

	rates := table.Rates("Pikachu ex")
	rates["Mewtwo ex"] = 10

	if rate, _ := table.Rate("Pikachu ex", "Mewtwo ex"); rate != 58.5 {
		t.Error("mutating the returned map leaked into the table")
	}

	if got := table.Rates("Celebi ex"); got != nil {
		t.Errorf("Rates() for unknown deck = %v, want nil", got)
	}
}

func TestMatchupTableClone(t *testing.T) {
	table := MatchupTable{
		"Pikachu ex": {"Mewtwo ex": 58.5},
	}

	clone := table.Clone()
	clone["Pikachu ex"]["Mewtwo ex"] = 10

	if rate, _ := table.Rate("Pikachu ex", "Mewtwo ex"); rate != 58.5 {
		t.Error("mutating the clone leaked into the original")
	}

	var nilTable MatchupTable
	if got := nilTable.Clone(); got != nil {
		t.Errorf("Clone() of nil table = %v, want nil", got)
	}
}
