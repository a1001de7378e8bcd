package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/analyzer"
)

// WriteRankingCSV writes the ranked analyses as CSV to w.
func WriteRankingCSV(w io.Writer, analyses []*analyzer.Analysis) error {
	writer := csv.NewWriter(w)

	header := []string{"rank", "deck", "tier", "share", "win_rate", "expected_win_rate", "confidence", "stability", "sample_size"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for i, a := range analyses {
		record := []string{
			strconv.Itoa(i + 1),
			a.Deck.Name,
			string(a.Tier),
			strconv.FormatFloat(a.Deck.Share, 'f', 2, 64),
			strconv.FormatFloat(a.Deck.WinRate, 'f', 2, 64),
			strconv.FormatFloat(a.ExpectedWinRate, 'f', 2, 64),
			strconv.FormatFloat(a.Confidence, 'f', 2, 64),
			strconv.FormatFloat(a.Stability, 'f', 2, 64),
			strconv.Itoa(a.Deck.SampleSize()),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write CSV record for %s: %w", a.Deck.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush CSV: %w", err)
	}
	return nil
}
