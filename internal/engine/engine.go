// Package engine orchestrates data acquisition, scoring and persistence
// into the dashboards served by the API and CLI.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/analyzer"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/insights"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/storage"
)

// Dashboard is the full scoring output for one field observation.
type Dashboard struct {
	Season    string               `json:"season"`
	Date      time.Time            `json:"date"`
	Analyses  []*analyzer.Analysis `json:"analyses"`
	Lineup    analyzer.Lineup      `json:"lineup"`
	Cycles    []insights.Cycle     `json:"cycles"`
	Diversity insights.Diversity   `json:"diversity"`
	Gems      []*analyzer.Analysis `json:"hidden_gems"`
}

// Engine computes dashboards and maintains the snapshot history.
type Engine struct {
	service        *meta.Service
	store          *storage.SnapshotStore
	season         string
	coverageTarget float64
	trendWindow    int
	keepSnapshots  int
}

// Config configures the engine.
type Config struct {
	// Service provides field and matchup data.
	Service *meta.Service

	// Store persists snapshot history. Optional; without it Refresh
	// does not record history and Trends has nothing to read.
	Store *storage.SnapshotStore

	// Season identifies the season to analyze.
	Season string

	// CoverageTarget is the cumulative share (percent) of the field to
	// analyze. Default: 80.
	CoverageTarget float64

	// TrendWindow bounds how many of the newest snapshots feed trend
	// prediction. 0 uses the full history.
	TrendWindow int

	// KeepSnapshots bounds stored history per season. 0 keeps everything.
	KeepSnapshots int
}

// New creates a new engine.
func New(config *Config) *Engine {
	coverageTarget := config.CoverageTarget
	if coverageTarget <= 0 {
		coverageTarget = 80
	}

	return &Engine{
		service:        config.Service,
		store:          config.Store,
		season:         config.Season,
		coverageTarget: coverageTarget,
		trendWindow:    config.TrendWindow,
		keepSnapshots:  config.KeepSnapshots,
	}
}

// Refresh fetches the current field, scores it and records the snapshot
// in history.
func (e *Engine) Refresh(ctx context.Context) (*Dashboard, error) {
	snapshot, matchups, err := e.service.GetField(ctx, e.season)
	if err != nil {
		return nil, fmt.Errorf("fetch field: %w", err)
	}

	if e.store != nil {
		if _, err := e.recordSnapshot(ctx, snapshot, matchups); err != nil {
			// History is best effort; the dashboard is still valid.
			log.Printf("failed to record snapshot: %v", err)
		}
	}

	return e.build(snapshot, matchups), nil
}

// Dashboard returns a dashboard for the latest stored snapshot, falling
// back to a live refresh when no history exists.
func (e *Engine) Dashboard(ctx context.Context) (*Dashboard, error) {
	if e.store != nil {
		stored, err := e.store.GetLatest(ctx, e.season)
		if err == nil {
			return e.build(stored.Snapshot, stored.Matchups), nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load latest snapshot: %w", err)
		}
	}
	return e.Refresh(ctx)
}

// Trends predicts rising and declining decks from the stored history.
func (e *Engine) Trends(ctx context.Context) (insights.TrendPrediction, error) {
	snapshots, err := e.History(ctx)
	if err != nil {
		return insights.TrendPrediction{}, err
	}
	if e.trendWindow > 0 && len(snapshots) > e.trendWindow {
		snapshots = snapshots[len(snapshots)-e.trendWindow:]
	}

	series := make([]meta.Snapshot, len(snapshots))
	for i, snapshot := range snapshots {
		series[i] = *snapshot
	}
	return insights.PredictTrends(series), nil
}

// History returns the stored snapshots for the season, oldest first.
func (e *Engine) History(ctx context.Context) ([]*meta.Snapshot, error) {
	if e.store == nil {
		return nil, fmt.Errorf("no snapshot store configured")
	}

	snapshots, err := e.store.ListSnapshots(ctx, e.season)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snapshots, nil
}

// ImportSnapshot records an externally supplied snapshot in history and
// returns its ID.
func (e *Engine) ImportSnapshot(ctx context.Context, snapshot *meta.Snapshot, matchups meta.MatchupTable) (int64, error) {
	if e.store == nil {
		return 0, fmt.Errorf("no snapshot store configured")
	}
	return e.recordSnapshot(ctx, snapshot, matchups)
}

func (e *Engine) recordSnapshot(ctx context.Context, snapshot *meta.Snapshot, matchups meta.MatchupTable) (int64, error) {
	id, err := e.store.SaveSnapshot(ctx, e.season, snapshot, matchups)
	if err != nil {
		return 0, err
	}

	if e.keepSnapshots > 0 {
		if _, err := e.store.Prune(ctx, e.season, e.keepSnapshots); err != nil {
			log.Printf("failed to prune snapshots: %v", err)
		}
	}
	return id, nil
}

// build scores one observation. Diversity reads the full field; ranking
// and insights run over the coverage-selected portion.
func (e *Engine) build(snapshot *meta.Snapshot, matchups meta.MatchupTable) *Dashboard {
	selected := analyzer.SelectByCoverage(snapshot.Decks, e.coverageTarget)
	analyses := analyzer.New(selected, matchups).AnalyzeAll()

	return &Dashboard{
		Season:    e.season,
		Date:      snapshot.Date,
		Analyses:  analyses,
		Lineup:    analyzer.RecommendLineup(analyses),
		Cycles:    insights.DetectCycles(analyses),
		Diversity: insights.DiversityOf(snapshot.Decks),
		Gems:      insights.HiddenGems(analyses),
	}
}
