package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/storage"
)

const watcherSnapshotJSON = `{
	"updated_at": "2026-08-01T00:00:00Z",
	"decks": [
		{"name": "Pikachu ex", "share": 30, "win_rate": 54},
		{"name": "Mewtwo ex", "share": 25, "win_rate": 52}
	]
}`

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	dbConfig := storage.DefaultConfig(filepath.Join(t.TempDir(), "meta.db"))
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return engine.New(&engine.Config{
		Store:  storage.NewSnapshotStore(db),
		Season: "A3b",
	})
}

func TestNewValidation(t *testing.T) {
	if _, err := New(&Config{Dir: t.TempDir()}); err == nil {
		t.Error("expected error without engine")
	}
	if _, err := New(&Config{Engine: newTestEngine(t)}); err == nil {
		t.Error("expected error without directory")
	}
}

func TestScanImportsExistingFiles(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "snapshot.json"), []byte(watcherSnapshotJSON), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	// Non-JSON files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	w, err := New(&Config{Engine: e, Dir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	w.scan(ctx)

	history, err := e.History(ctx)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(history))
	}
	if len(history[0].Decks) != 2 {
		t.Errorf("got %d decks, want 2", len(history[0].Decks))
	}
}

func TestScanImportsEachFileOnce(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "snapshot.json"), []byte(watcherSnapshotJSON), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	w, err := New(&Config{Engine: e, Dir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	w.scan(ctx)
	w.scan(ctx)

	history, err := e.History(ctx)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("got %d snapshots after double scan, want 1", len(history))
	}
}

func TestScanLeavesMalformedFilesForRetry(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")

	if err := os.WriteFile(path, []byte("{partial"), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	w, err := New(&Config{Engine: e, Dir: dir})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	w.scan(ctx)

	if history, _ := e.History(ctx); len(history) != 0 {
		t.Fatalf("malformed file imported: %d snapshots", len(history))
	}

	// The completed file is picked up on a later pass.
	if err := os.WriteFile(path, []byte(watcherSnapshotJSON), 0o644); err != nil {
		t.Fatalf("rewrite snapshot: %v", err)
	}
	w.scan(ctx)

	history, err := e.History(ctx)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("got %d snapshots after retry, want 1", len(history))
	}
}

func TestRunImportsDroppedFile(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()

	w, err := New(&Config{Engine: e, Dir: dir, PollInterval: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "drop.json"), []byte(watcherSnapshotJSON), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		history, err := e.History(context.Background())
		if err != nil {
			t.Fatalf("History() error: %v", err)
		}
		if len(history) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("dropped file was not imported in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Run() returned %v, want context.Canceled", err)
	}
}
