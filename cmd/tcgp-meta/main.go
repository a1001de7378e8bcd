// Package main provides the tcgp-meta command line interface.
//
// Subcommands:
//
//	analyze  print the ranked analysis table
//	report   write a markdown meta report
//	trends   print the share trend prediction
//	import   import snapshot JSON files into history
//	chart    render the share-history chart
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/config"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/export"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/insights"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/storage"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/version"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "report":
		err = runReport(os.Args[2:])
	case "trends":
		err = runTrends(os.Args[2:])
	case "import":
		err = runImport(os.Args[2:])
	case "chart":
		err = runChart(os.Args[2:])
	case "version":
		fmt.Println(version.GetVersion())
		return
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tcgp-meta <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  analyze   print the ranked analysis table")
	fmt.Fprintln(os.Stderr, "  report    write a markdown meta report")
	fmt.Fprintln(os.Stderr, "  trends    print the share trend prediction")
	fmt.Fprintln(os.Stderr, "  import    import snapshot JSON files into history")
	fmt.Fprintln(os.Stderr, "  chart     render the share-history chart")
	fmt.Fprintln(os.Stderr, "  version   print the application version")
}

// commonFlags holds the flags shared by every subcommand.
type commonFlags struct {
	configPath string
	season     string
	dbPath     string
	snapshot   string
	matchups   string
}

func registerCommon(fs *flag.FlagSet) *commonFlags {
	var c commonFlags
	fs.StringVar(&c.configPath, "config", "", "Config file path")
	fs.StringVar(&c.season, "season", "", "Season override (e.g., A3b)")
	fs.StringVar(&c.dbPath, "db-path", "", "Database path override")
	fs.StringVar(&c.snapshot, "snapshot", "", "Snapshot fixture JSON (skips the live source)")
	fs.StringVar(&c.matchups, "matchups", "", "Matchup fixture JSON")
	return &c
}

// setup loads config, applies flag overrides and builds the engine.
// withStore controls whether the database is opened.
func setup(c *commonFlags, withStore bool) (*engine.Engine, func(), error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	if c.season != "" {
		cfg.Source.Season = c.season
	}
	if c.dbPath != "" {
		cfg.Database.Path = c.dbPath
	}
	if c.snapshot != "" {
		cfg.Source.Offline = true
		cfg.Source.SnapshotFixture = c.snapshot
		cfg.Source.MatchupFixture = c.matchups
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	cacheTTL, err := cfg.GetCacheTTL()
	if err != nil {
		cacheTTL = 15 * time.Minute
	}
	service := meta.NewService(&meta.ServiceConfig{
		Client: &meta.LimitlessConfig{
			BaseURL:         cfg.Source.BaseURL,
			CacheTTL:        cacheTTL,
			RateLimitPerSec: float64(cfg.Source.RateLimitPerSec),
		},
		Offline:             cfg.Source.Offline,
		FixtureSnapshotPath: cfg.Source.SnapshotFixture,
		FixtureMatchupPath:  cfg.Source.MatchupFixture,
	})

	engineConfig := &engine.Config{
		Service:        service,
		Season:         cfg.Source.Season,
		CoverageTarget: cfg.Analysis.CoverageTarget,
		TrendWindow:    cfg.Analysis.TrendWindow,
		KeepSnapshots:  cfg.Database.KeepSnapshots,
	}

	cleanup := func() {}
	if withStore {
		dbFile := cfg.Database.Path
		if dbFile == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("get home directory: %w", err)
			}
			dbFile = filepath.Join(home, ".tcgp-meta", "meta.db")
		}

		dbConfig := storage.DefaultConfig(dbFile)
		dbConfig.AutoMigrate = true
		db, err := storage.Open(dbConfig)
		if err != nil {
			return nil, nil, err
		}
		engineConfig.Store = storage.NewSnapshotStore(db)
		cleanup = func() { _ = db.Close() }
	}

	return engine.New(engineConfig), cleanup, nil
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	common := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, cleanup, err := setup(common, false)
	if err != nil {
		return err
	}
	defer cleanup()

	dashboard, err := e.Refresh(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Season %s, snapshot %s\n\n", dashboard.Season, dashboard.Date.Format("2006-01-02"))
	fmt.Printf("%-4s %-28s %-4s %8s %8s %10s %6s %6s\n",
		"#", "Deck", "Tier", "Share", "WinRate", "Expected", "Conf", "Stab")
	for i, a := range dashboard.Analyses {
		fmt.Printf("%-4d %-28s %-4s %7.1f%% %7.1f%% %9.1f%% %6.1f %6.2f\n",
			i+1, a.Deck.Name, a.Tier, a.Deck.Share, a.Deck.WinRate,
			a.ExpectedWinRate, a.Confidence, a.Stability)
	}

	if lineup := dashboard.Lineup; lineup.Main != nil {
		fmt.Printf("\nLineup: main %s", lineup.Main.Deck.Name)
		if lineup.Sub != nil {
			fmt.Printf(", sub %s", lineup.Sub.Deck.Name)
		}
		if lineup.Meta != nil {
			fmt.Printf(", meta call %s", lineup.Meta.Deck.Name)
		}
		fmt.Println()
	}
	return nil
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	common := registerCommon(fs)
	output := fs.String("o", "meta-report.md", "Output file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, cleanup, err := setup(common, true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	dashboard, err := e.Refresh(ctx)
	if err != nil {
		return err
	}

	// Trends need history; without it the section is simply omitted.
	var trendsPtr *insights.TrendPrediction
	if trends, err := e.Trends(ctx); err == nil {
		trendsPtr = &trends
	}

	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := export.WriteReport(f, dashboard, trendsPtr); err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", *output)
	return nil
}

func runTrends(args []string) error {
	fs := flag.NewFlagSet("trends", flag.ExitOnError)
	common := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, cleanup, err := setup(common, true)
	if err != nil {
		return err
	}
	defer cleanup()

	trends, err := e.Trends(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Confidence: %.1f\n", trends.Confidence)
	if len(trends.Rising) == 0 && len(trends.Declining) == 0 {
		fmt.Println("No clear trends.")
		return nil
	}
	for _, name := range trends.Rising {
		fmt.Printf("  rising:    %s (slope %+.2f)\n", name, trends.Slopes[name])
	}
	for _, name := range trends.Declining {
		fmt.Printf("  declining: %s (slope %+.2f)\n", name, trends.Slopes[name])
	}
	return nil
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	common := registerCommon(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("import requires at least one snapshot file")
	}

	e, cleanup, err := setup(common, true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	for _, path := range fs.Args() {
		snapshot, err := meta.LoadSnapshotFile(path)
		if err != nil {
			return err
		}
		if _, err := e.ImportSnapshot(ctx, snapshot, nil); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Printf("Imported %s (%d decks)\n", path, len(snapshot.Decks))
	}
	return nil
}

func runChart(args []string) error {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	common := registerCommon(fs)
	output := fs.String("o", "share-history.html", "Output HTML file path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, cleanup, err := setup(common, true)
	if err != nil {
		return err
	}
	defer cleanup()

	snapshots, err := e.History(context.Background())
	if err != nil {
		return err
	}

	if err := export.RenderShareHistory(snapshots, export.DefaultChartConfig(), *output); err != nil {
		return err
	}
	fmt.Printf("Chart written to %s\n", *output)
	return nil
}
