package meta

import (
	"context"
	"testing"
	"time"
)

func TestServiceGetFieldLive(t *testing.T) {
	server := newTestServer(t, nil)
	defer server.Close()

	service := NewService(&ServiceConfig{Client: testClientConfig(server.URL)})

	snapshot, matchups, err := service.GetField(context.Background(), "A3b")
	if err != nil {
		t.Fatalf("GetField() error: %v", err)
	}

	if len(snapshot.Decks) != 2 {
		t.Errorf("got %d decks, want 2", len(snapshot.Decks))
	}
	if _, ok := matchups.Rate("Pikachu ex", "Mewtwo ex"); !ok {
		t.Error("expected matchup data from live source")
	}
}

func TestServiceGetFieldFallsBackToFixtures(t *testing.T) {
	snapshotPath := writeFixture(t, "snapshot.json", `{
		"updated_at": "2026-08-01T00:00:00Z",
		"decks": [{"name": "Pikachu ex", "share": 21.5, "win_rate": 54.2}]
	}`)
	matchupPath := writeFixture(t, "matchups.json", `{
		"matchups": [{"deck": "Pikachu ex", "opponent": "Mewtwo ex", "win_rate": 58.0}]
	}`)

	service := NewService(&ServiceConfig{
		Client: &LimitlessConfig{
			BaseURL:         "http://127.0.0.1:1", // nothing listens here
			CacheTTL:        time.Hour,
			RequestTimeout:  100 * time.Millisecond,
			RateLimitPerSec: 1000,
		},
		FixtureSnapshotPath: snapshotPath,
		FixtureMatchupPath:  matchupPath,
	})

	snapshot, matchups, err := service.GetField(context.Background(), "A3b")
	if err != nil {
		t.Fatalf("GetField() error: %v", err)
	}
	if len(snapshot.Decks) != 1 {
		t.Errorf("got %d decks from fixtures, want 1", len(snapshot.Decks))
	}
	if rate, ok := matchups.Rate("Pikachu ex", "Mewtwo ex"); !ok || rate != 58.0 {
		t.Errorf("fixture matchups = %v, %v", rate, ok)
	}
}

func TestServiceGetFieldOffline(t *testing.T) {
	snapshotPath := writeFixture(t, "snapshot.json", `{
		"decks": [{"name": "Pikachu ex", "share": 21.5}]
	}`)

	service := NewService(&ServiceConfig{
		Offline:             true,
		FixtureSnapshotPath: snapshotPath,
	})

	snapshot, matchups, err := service.GetField(context.Background(), "A3b")
	if err != nil {
		t.Fatalf("GetField() error: %v", err)
	}
	if len(snapshot.Decks) != 1 {
		t.Errorf("got %d decks, want 1", len(snapshot.Decks))
	}
	// No matchup fixture: every matchup is unknown, not an error.
	if len(matchups) != 0 {
		t.Errorf("expected empty matchup table, got %v", matchups)
	}
}

func TestServiceGetFieldNoSources(t *testing.T) {
	service := NewService(&ServiceConfig{Offline: true})

	if _, _, err := service.GetField(context.Background(), "A3b"); err == nil {
		t.Error("expected error when no source is configured")
	}
}
