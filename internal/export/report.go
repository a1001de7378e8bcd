// Package export renders dashboards as markdown reports, CSV tables and
// interactive share-history charts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/insights"
)

// WriteReport writes a markdown meta report to w. A nil trends argument
// omits the trend section, for runs without stored history.
func WriteReport(w io.Writer, dashboard *engine.Dashboard, trends *insights.TrendPrediction) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Meta Report: %s\n\n", dashboard.Season)
	fmt.Fprintf(&b, "Snapshot date: %s\n\n", dashboard.Date.Format("2006-01-02"))

	writeRanking(&b, dashboard)
	writeLineup(&b, dashboard)
	writeCycles(&b, dashboard)
	writeDiversity(&b, dashboard)
	if trends != nil {
		writeTrends(&b, trends)
	}
	writeGems(&b, dashboard)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeRanking(b *strings.Builder, dashboard *engine.Dashboard) {
	b.WriteString("## Ranking\n\n")
	b.WriteString("| # | Deck | Tier | Share | Win Rate | Expected | Confidence | Stability |\n")
	b.WriteString("|---|------|------|-------|----------|----------|------------|-----------|\n")

	for i, a := range dashboard.Analyses {
		fmt.Fprintf(b, "| %d | %s | %s | %.1f%% | %.1f%% | %.1f%% | %.1f | %.2f |\n",
			i+1, a.Deck.Name, a.Tier, a.Deck.Share, a.Deck.WinRate,
			a.ExpectedWinRate, a.Confidence, a.Stability)
	}
	b.WriteString("\n")
}

func writeLineup(b *strings.Builder, dashboard *engine.Dashboard) {
	b.WriteString("## Recommended Lineup\n\n")

	lineup := dashboard.Lineup
	if lineup.Main == nil {
		b.WriteString("No lineup available.\n\n")
		return
	}

	fmt.Fprintf(b, "- **Main**: %s (tier %s, expected %.1f%%)\n",
		lineup.Main.Deck.Name, lineup.Main.Tier, lineup.Main.ExpectedWinRate)
	for _, m := range lineup.MainFavorable {
		fmt.Fprintf(b, "  - strong into %s\n", m.Label())
	}
	for _, m := range lineup.MainUnfavorable {
		fmt.Fprintf(b, "  - weak into %s\n", m.Label())
	}

	if lineup.Sub != nil {
		fmt.Fprintf(b, "- **Sub**: %s (tier %s, expected %.1f%%)\n",
			lineup.Sub.Deck.Name, lineup.Sub.Tier, lineup.Sub.ExpectedWinRate)
	}
	if lineup.Meta != nil {
		fmt.Fprintf(b, "- **Meta call**: %s (share %.1f%%, expected %.1f%%)\n",
			lineup.Meta.Deck.Name, lineup.Meta.Deck.Share, lineup.Meta.ExpectedWinRate)
	}
	b.WriteString("\n")
}

func writeCycles(b *strings.Builder, dashboard *engine.Dashboard) {
	b.WriteString("## Dominance Cycles\n\n")

	if len(dashboard.Cycles) == 0 {
		b.WriteString("No dominance cycles detected.\n\n")
		return
	}

	for _, cycle := range dashboard.Cycles {
		fmt.Fprintf(b, "- %s → %s → %s → %s (strength %.1f)\n",
			cycle.Decks[0], cycle.Decks[1], cycle.Decks[2], cycle.Decks[0], cycle.Strength)
	}
	b.WriteString("\n")
}

func writeDiversity(b *strings.Builder, dashboard *engine.Dashboard) {
	b.WriteString("## Diversity\n\n")
	fmt.Fprintf(b, "- Shannon: %.1f / 100\n", dashboard.Diversity.Shannon)
	fmt.Fprintf(b, "- Simpson: %.1f / 100\n\n", dashboard.Diversity.Simpson)
}

func writeTrends(b *strings.Builder, trends *insights.TrendPrediction) {
	b.WriteString("## Trends\n\n")
	fmt.Fprintf(b, "Confidence: %.1f\n\n", trends.Confidence)

	if len(trends.Rising) == 0 && len(trends.Declining) == 0 {
		b.WriteString("No clear trends.\n\n")
		return
	}
	if len(trends.Rising) > 0 {
		fmt.Fprintf(b, "- Rising: %s\n", strings.Join(trends.Rising, ", "))
	}
	if len(trends.Declining) > 0 {
		fmt.Fprintf(b, "- Declining: %s\n", strings.Join(trends.Declining, ", "))
	}
	b.WriteString("\n")
}

func writeGems(b *strings.Builder, dashboard *engine.Dashboard) {
	b.WriteString("## Hidden Gems\n\n")

	if len(dashboard.Gems) == 0 {
		b.WriteString("No hidden gems in this snapshot.\n")
		return
	}

	for _, gem := range dashboard.Gems {
		fmt.Fprintf(b, "- %s (share %.1f%%, expected %.1f%%)\n",
			gem.Deck.Name, gem.Deck.Share, gem.ExpectedWinRate)
	}
}
