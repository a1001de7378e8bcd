package analyzer

import (
	"testing"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

func TestSelectByCoverage(t *testing.T) {
	field := []meta.Deck{
		{Name: "Pikachu ex", Share: 40},
		{Name: "Mewtwo ex", Share: 30},
		{Name: "Charizard ex", Share: 20},
		{Name: "Starmie ex", Share: 10},
	}

	tests := []struct {
		name      string
		decks     []meta.Deck
		target    float64
		wantNames []string
	}{
		{
			name:      "crossing deck is included",
			decks:     field,
			target:    80,
			wantNames: []string{"Pikachu ex", "Mewtwo ex", "Charizard ex"},
		},
		{
			name:      "exact boundary stops",
			decks:     field,
			target:    70,
			wantNames: []string{"Pikachu ex", "Mewtwo ex"},
		},
		{
			name:      "unreachable target returns everything",
			decks:     field,
			target:    150,
			wantNames: []string{"Pikachu ex", "Mewtwo ex", "Charizard ex", "Starmie ex"},
		},
		{
			name:      "zero target still returns the first deck",
			decks:     field,
			target:    0,
			wantNames: []string{"Pikachu ex"},
		},
		{
			name:      "negative target still returns the first deck",
			decks:     field,
			target:    -5,
			wantNames: []string{"Pikachu ex"},
		},
		{
			name:      "empty input",
			decks:     nil,
			target:    80,
			wantNames: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectByCoverage(tt.decks, tt.target)
			if len(got) != len(tt.wantNames) {
				t.Fatalf("got %d decks, want %d", len(got), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got[i].Name != want {
					t.Errorf("position %d: got %q, want %q", i, got[i].Name, want)
				}
			}
		})
	}
}

func TestSelectByCoverageSortsInput(t *testing.T) {
	decks := []meta.Deck{
		{Name: "Starmie ex", Share: 10},
		{Name: "Pikachu ex", Share: 40},
	}

	got := SelectByCoverage(decks, 40)
	if len(got) != 1 || got[0].Name != "Pikachu ex" {
		t.Errorf("expected share ordering before accumulation, got %+v", got)
	}

	if decks[0].Name != "Starmie ex" {
		t.Error("input slice was modified")
	}
}
