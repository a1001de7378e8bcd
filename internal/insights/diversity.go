package insights

import (
	"math"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// Diversity summarizes how evenly share is distributed across the field.
// Both readings are scaled to 0-100; higher means a more even field.
type Diversity struct {
	// Shannon is the Shannon entropy of the share distribution,
	// normalized by log2(n) so a perfectly even field scores 100.
	Shannon float64 `json:"shannon"`

	// Simpson is the Simpson complement 1 - sum(p^2), scaled to 0-100.
	Simpson float64 `json:"simpson"`
}

// DiversityOf computes both diversity readings over the share
// distribution. A field with one or zero decks, or zero total share, is
// defined to score 0 on both indices; this avoids log(0) and division by
// zero rather than producing NaN.
func DiversityOf(decks []meta.Deck) Diversity {
	if len(decks) < 2 {
		return Diversity{}
	}

	var total float64
	for _, d := range decks {
		total += d.Share
	}
	if total == 0 {
		return Diversity{}
	}

	var entropy, sumSquares float64
	for _, d := range decks {
		p := d.Share / total
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
		sumSquares += p * p
	}

	return Diversity{
		Shannon: entropy / math.Log2(float64(len(decks))) * 100,
		Simpson: (1 - sumSquares) * 100,
	}
}
