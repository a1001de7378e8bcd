package meta

import (
	"context"
	"fmt"
)

// Service resolves field and matchup data for the analyzer, preferring
// the live source and falling back to local fixture files when the
// source is unreachable or not configured.
type Service struct {
	client              *LimitlessClient
	fixtureSnapshotPath string
	fixtureMatchupPath  string
}

// ServiceConfig configures the meta service.
type ServiceConfig struct {
	// Client configures the live source; nil uses defaults.
	Client *LimitlessConfig

	// FixtureSnapshotPath and FixtureMatchupPath point at local JSON
	// exports used when the live source fails. Either may be empty.
	FixtureSnapshotPath string
	FixtureMatchupPath  string

	// Offline disables the live source entirely; fixtures become the
	// only data source.
	Offline bool
}

// NewService creates a new meta service.
func NewService(config *ServiceConfig) *Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	s := &Service{
		fixtureSnapshotPath: config.FixtureSnapshotPath,
		fixtureMatchupPath:  config.FixtureMatchupPath,
	}
	if !config.Offline {
		s.client = NewLimitlessClient(config.Client)
	}

	return s
}

// GetField returns the current snapshot and matchup table for a season.
// The two requests run concurrently against the live source; on any
// live failure both fall back to fixtures together, so the snapshot and
// table always describe the same observation.
func (s *Service) GetField(ctx context.Context, season string) (*Snapshot, MatchupTable, error) {
	if s.client != nil {
		snapshot, matchups, err := s.fetchLive(ctx, season)
		if err == nil {
			return snapshot, matchups, nil
		}
		if !s.hasFixtures() {
			return nil, nil, err
		}
	}

	if !s.hasFixtures() {
		return nil, nil, fmt.Errorf("no data source configured for season %s", season)
	}
	return s.loadFixtures()
}

// fetchLive fetches snapshot and matchups concurrently.
func (s *Service) fetchLive(ctx context.Context, season string) (*Snapshot, MatchupTable, error) {
	type snapshotResult struct {
		snapshot *Snapshot
		err      error
	}
	type matchupResult struct {
		matchups MatchupTable
		err      error
	}

	snapshotCh := make(chan snapshotResult, 1)
	matchupCh := make(chan matchupResult, 1)

	go func() {
		snapshot, err := s.client.GetSnapshot(ctx, season)
		snapshotCh <- snapshotResult{snapshot, err}
	}()
	go func() {
		matchups, err := s.client.GetMatchups(ctx, season)
		matchupCh <- matchupResult{matchups, err}
	}()

	snapRes := <-snapshotCh
	matchRes := <-matchupCh

	if snapRes.err != nil {
		return nil, nil, fmt.Errorf("fetch snapshot: %w", snapRes.err)
	}
	if matchRes.err != nil {
		return nil, nil, fmt.Errorf("fetch matchups: %w", matchRes.err)
	}

	return snapRes.snapshot, matchRes.matchups, nil
}

// loadFixtures loads the configured fixture files. A missing matchup
// fixture yields an empty table; the analyzer treats every matchup as
// unknown and falls back to aggregate win rates.
func (s *Service) loadFixtures() (*Snapshot, MatchupTable, error) {
	if s.fixtureSnapshotPath == "" {
		return nil, nil, fmt.Errorf("no snapshot fixture configured")
	}

	snapshot, err := LoadSnapshotFile(s.fixtureSnapshotPath)
	if err != nil {
		return nil, nil, err
	}

	matchups := make(MatchupTable)
	if s.fixtureMatchupPath != "" {
		matchups, err = LoadMatchupFile(s.fixtureMatchupPath)
		if err != nil {
			return nil, nil, err
		}
	}

	return snapshot, matchups, nil
}

func (s *Service) hasFixtures() bool {
	return s.fixtureSnapshotPath != ""
}
