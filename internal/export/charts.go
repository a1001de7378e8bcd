package export

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// ChartConfig holds configuration for rendered charts.
type ChartConfig struct {
	Title    string // Chart title
	Subtitle string // Chart subtitle
	Width    string // Chart width (e.g., "900px")
	Height   string // Chart height (e.g., "500px")
	Smooth   bool   // Smooth lines
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:  "Deck Share History",
		Width:  "900px",
		Height: "500px",
		Smooth: true,
	}
}

// RenderShareHistory writes an interactive HTML line chart of each
// deck's share across the snapshot history, oldest to newest. Snapshots
// a deck is absent from render as gaps.
func RenderShareHistory(snapshots []*meta.Snapshot, config ChartConfig, outputPath string) error {
	if len(snapshots) == 0 {
		return fmt.Errorf("no snapshots to chart")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	xLabels := make([]string, len(snapshots))
	for i, snapshot := range snapshots {
		xLabels[i] = snapshot.Date.Format("2006-01-02")
	}

	// Deck order follows first appearance across the history.
	shareByDeck := make(map[string][]opts.LineData)
	var order []string
	for i, snapshot := range snapshots {
		for _, deck := range snapshot.Decks {
			if _, seen := shareByDeck[deck.Name]; !seen {
				order = append(order, deck.Name)
				shareByDeck[deck.Name] = make([]opts.LineData, len(snapshots))
				for j := range shareByDeck[deck.Name] {
					shareByDeck[deck.Name][j] = opts.LineData{Value: nil}
				}
			}
			shareByDeck[deck.Name][i] = opts.LineData{Value: deck.Share}
		}
	}

	line.SetXAxis(xLabels)
	for _, name := range order {
		line.AddSeries(name, shareByDeck[name])
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(config.Smooth),
		}),
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
