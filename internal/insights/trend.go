package insights

import (
	"sort"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// Trend classification thresholds. The share floors are asymmetric on
// purpose: a declining deck must have started from meaningful presence,
// while a rising deck only needs to end with it.
const (
	risingSlopeMin    = 0.1
	decliningSlopeMax = -0.1
	risingShareMin    = 3.0 // latest share floor for rising decks
	decliningShareMin = 5.0 // first share floor for declining decks
)

// TrendPrediction classifies decks by the direction of their share
// across an ordered snapshot sequence.
type TrendPrediction struct {
	Rising    []string `json:"rising_decks"`
	Declining []string `json:"declining_decks"`

	// Confidence is a 0-1 band derived from how many snapshots backed
	// the prediction.
	Confidence float64 `json:"confidence_level"`

	// Slopes maps each deck seen in at least two snapshots to its
	// fitted share slope, in share points per snapshot.
	Slopes map[string]float64 `json:"slopes,omitempty"`
}

// PredictTrends fits a least-squares slope to each deck's share history
// across snapshots, oldest to newest. Snapshots a deck is absent from
// are skipped, not interpolated. Fewer than two snapshots produce empty
// classifications at the lowest confidence band; that is the documented
// degenerate result, not an error.
func PredictTrends(snapshots []meta.Snapshot) TrendPrediction {
	prediction := TrendPrediction{
		Confidence: trendConfidence(len(snapshots)),
	}
	if len(snapshots) < 2 {
		return prediction
	}

	series := make(map[string][]float64)
	var order []string
	for _, snapshot := range snapshots {
		for _, deck := range snapshot.Decks {
			if _, seen := series[deck.Name]; !seen {
				order = append(order, deck.Name)
			}
			series[deck.Name] = append(series[deck.Name], deck.Share)
		}
	}
	sort.Strings(order)

	prediction.Slopes = make(map[string]float64)
	for _, name := range order {
		shares := series[name]
		if len(shares) < 2 {
			continue
		}

		slope := shareSlope(shares)
		prediction.Slopes[name] = slope

		switch {
		case slope > risingSlopeMin && shares[len(shares)-1] >= risingShareMin:
			prediction.Rising = append(prediction.Rising, name)
		case slope < decliningSlopeMax && shares[0] >= decliningShareMin:
			prediction.Declining = append(prediction.Declining, name)
		}
	}

	return prediction
}

// shareSlope fits an ordinary least-squares line through the share
// values using their index position as the independent variable, via
// the closed-form sums. Requires at least two points.
func shareSlope(shares []float64) float64 {
	n := float64(len(shares))

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range shares {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denominator
}

// trendConfidence maps snapshot count to a discrete confidence band.
func trendConfidence(snapshots int) float64 {
	switch {
	case snapshots >= 10:
		return 0.9
	case snapshots >= 5:
		return 0.7
	case snapshots >= 3:
		return 0.5
	default:
		return 0.3
	}
}
