// Package main runs the REST API server for the meta analyzer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/api"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/config"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/storage"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/watcher"
)

var (
	configPath = flag.String("config", "", "Config file path (default: ~/.tcgp-meta/config.toml)")
	addr       = flag.String("addr", "", "Listen address override (e.g., :8080)")
	dbPath     = flag.String("db-path", "", "Database path override")
	season     = flag.String("season", "", "Season override (e.g., A3b)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *season != "" {
		cfg.Source.Season = *season
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	dbFile := cfg.Database.Path
	if dbFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dbFile = filepath.Join(home, ".tcgp-meta", "meta.db")
	}

	dbConfig := storage.DefaultConfig(dbFile)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	e := engine.New(&engine.Config{
		Service:        newMetaService(cfg),
		Store:          storage.NewSnapshotStore(db),
		Season:         cfg.Source.Season,
		CoverageTarget: cfg.Analysis.CoverageTarget,
		TrendWindow:    cfg.Analysis.TrendWindow,
		KeepSnapshots:  cfg.Database.KeepSnapshots,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Watch.Enabled {
		pollInterval, _ := cfg.GetWatchPollInterval()
		w, err := watcher.New(&watcher.Config{
			Engine:       e,
			Dir:          cfg.Watch.Dir,
			PollInterval: pollInterval,
		})
		if err != nil {
			log.Fatalf("Failed to create watcher: %v", err)
		}
		go func() {
			if err := w.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("Watcher stopped: %v", err)
			}
		}()
		log.Printf("Watching %s for snapshot files", cfg.Watch.Dir)
	}

	server := api.NewServer(&api.Config{Addr: cfg.Server.Addr}, e)
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	fmt.Printf("Meta API server running at http://localhost%s\n", cfg.Server.Addr)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	cancel()

	shutdownTimeout, err := cfg.GetShutdownTimeout()
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	fmt.Println("API server stopped.")
}

func newMetaService(cfg *config.Config) *meta.Service {
	cacheTTL, err := cfg.GetCacheTTL()
	if err != nil {
		cacheTTL = 15 * time.Minute
	}

	return meta.NewService(&meta.ServiceConfig{
		Client: &meta.LimitlessConfig{
			BaseURL:         cfg.Source.BaseURL,
			CacheTTL:        cacheTTL,
			RateLimitPerSec: float64(cfg.Source.RateLimitPerSec),
		},
		Offline:             cfg.Source.Offline,
		FixtureSnapshotPath: cfg.Source.SnapshotFixture,
		FixtureMatchupPath:  cfg.Source.MatchupFixture,
	})
}
