package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()

	config := DefaultConfig(filepath.Join(t.TempDir(), "meta.db"))
	config.AutoMigrate = true

	db, err := Open(config)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error: %v", err)
		}
	})

	return NewSnapshotStore(db)
}

func testSnapshot(date time.Time) *meta.Snapshot {
	return &meta.Snapshot{
		Date: date,
		Decks: []meta.Deck{
			{Name: "Pikachu ex", Share: 21.5, WinRate: 54.2, Wins: 820, Losses: 700, Ties: 40},
			{Name: "Mewtwo ex", Share: 18.3, WinRate: 52.1, Wins: 600, Losses: 520, Ties: 30},
			{Name: "Charizard ex", Share: 12.0, WinRate: 50.5, Wins: 410, Losses: 402, Ties: 12},
		},
	}
}

func testMatchups() meta.MatchupTable {
	return meta.MatchupTable{
		"Pikachu ex": {"Mewtwo ex": 58.0, "Charizard ex": 47.5},
		"Mewtwo ex":  {"Pikachu ex": 44.5},
	}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	date := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	id, err := store.SaveSnapshot(ctx, "A3b", testSnapshot(date), testMatchups())
	if err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero snapshot ID")
	}

	stored, err := store.GetLatest(ctx, "A3b")
	if err != nil {
		t.Fatalf("GetLatest() error: %v", err)
	}

	if stored.ID != id {
		t.Errorf("ID = %d, want %d", stored.ID, id)
	}
	if !stored.Snapshot.Date.Equal(date) {
		t.Errorf("Date = %v, want %v", stored.Snapshot.Date, date)
	}
	if len(stored.Snapshot.Decks) != 3 {
		t.Fatalf("got %d decks, want 3", len(stored.Snapshot.Decks))
	}
	// Deck order survives the round trip.
	if stored.Snapshot.Decks[0].Name != "Pikachu ex" || stored.Snapshot.Decks[2].Name != "Charizard ex" {
		t.Errorf("deck order = %v, %v, %v",
			stored.Snapshot.Decks[0].Name, stored.Snapshot.Decks[1].Name, stored.Snapshot.Decks[2].Name)
	}
	if stored.Snapshot.Decks[0].Wins != 820 {
		t.Errorf("Wins = %d, want 820", stored.Snapshot.Decks[0].Wins)
	}

	if rate, ok := stored.Matchups.Rate("Pikachu ex", "Mewtwo ex"); !ok || rate != 58.0 {
		t.Errorf("Rate(Pikachu, Mewtwo) = %v, %v", rate, ok)
	}
	if rate, ok := stored.Matchups.Rate("Mewtwo ex", "Pikachu ex"); !ok || rate != 44.5 {
		t.Errorf("Rate(Mewtwo, Pikachu) = %v, %v", rate, ok)
	}
}

func TestSnapshotStoreGetLatestNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetLatest(context.Background(), "A3b")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLatest() error = %v, want ErrNotFound", err)
	}
}

func TestSnapshotStoreListOrdersOldestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	// Insert out of chronological order.
	for _, offset := range []int{2, 0, 1} {
		if _, err := store.SaveSnapshot(ctx, "A3b", testSnapshot(base.AddDate(0, 0, offset)), nil); err != nil {
			t.Fatalf("SaveSnapshot() error: %v", err)
		}
	}

	snapshots, err := store.ListSnapshots(ctx, "A3b")
	if err != nil {
		t.Fatalf("ListSnapshots() error: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snapshots))
	}
	for i, snapshot := range snapshots {
		want := base.AddDate(0, 0, i)
		if !snapshot.Date.Equal(want) {
			t.Errorf("snapshot %d date = %v, want %v", i, snapshot.Date, want)
		}
		if len(snapshot.Decks) != 3 {
			t.Errorf("snapshot %d has %d decks, want 3", i, len(snapshot.Decks))
		}
	}
}

func TestSnapshotStoreSeasonIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if _, err := store.SaveSnapshot(ctx, "A3a", testSnapshot(date), nil); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}

	snapshots, err := store.ListSnapshots(ctx, "A3b")
	if err != nil {
		t.Fatalf("ListSnapshots() error: %v", err)
	}
	if len(snapshots) != 0 {
		t.Errorf("got %d snapshots for other season, want 0", len(snapshots))
	}
}

func TestSnapshotStorePrune(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := store.SaveSnapshot(ctx, "A3b", testSnapshot(base.AddDate(0, 0, i)), testMatchups()); err != nil {
			t.Fatalf("SaveSnapshot() error: %v", err)
		}
	}

	removed, err := store.Prune(ctx, "A3b", 2)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	snapshots, err := store.ListSnapshots(ctx, "A3b")
	if err != nil {
		t.Fatalf("ListSnapshots() error: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("got %d snapshots after prune, want 2", len(snapshots))
	}
	// The newest two survive.
	if !snapshots[0].Date.Equal(base.AddDate(0, 0, 3)) {
		t.Errorf("oldest surviving date = %v, want %v", snapshots[0].Date, base.AddDate(0, 0, 3))
	}

	// The latest snapshot still has its matchup table.
	stored, err := store.GetLatest(ctx, "A3b")
	if err != nil {
		t.Fatalf("GetLatest() error: %v", err)
	}
	if len(stored.Matchups) == 0 {
		t.Error("expected matchups to survive prune")
	}

	if _, err := store.Prune(ctx, "A3b", -1); err == nil {
		t.Error("expected error for negative keep")
	}
}
