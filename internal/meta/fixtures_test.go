package meta

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadSnapshotFile(t *testing.T) {
	path := writeFixture(t, "snapshot.json", `{
		"season": "A3b",
		"updated_at": "2026-08-01T00:00:00Z",
		"decks": [{"name": "Pikachu ex", "share": 21.5, "win_rate": 54.2}]
	}`)

	snapshot, err := LoadSnapshotFile(path)
	if err != nil {
		t.Fatalf("LoadSnapshotFile() error: %v", err)
	}

	if len(snapshot.Decks) != 1 || snapshot.Decks[0].Name != "Pikachu ex" {
		t.Errorf("Decks = %+v", snapshot.Decks)
	}
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !snapshot.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", snapshot.Date, want)
	}
}

func TestLoadSnapshotFileMissingDate(t *testing.T) {
	path := writeFixture(t, "snapshot.json", `{"decks": [{"name": "Pikachu ex", "share": 21.5}]}`)

	snapshot, err := LoadSnapshotFile(path)
	if err != nil {
		t.Fatalf("LoadSnapshotFile() error: %v", err)
	}
	if snapshot.Date.IsZero() {
		t.Error("expected file modification time as fallback date")
	}
}

func TestLoadSnapshotFileErrors(t *testing.T) {
	if _, err := LoadSnapshotFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeFixture(t, "bad.json", `{not json`)
	if _, err := LoadSnapshotFile(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestLoadMatchupFile(t *testing.T) {
	path := writeFixture(t, "matchups.json", `{
		"matchups": [
			{"deck": "Pikachu ex", "opponent": "Mewtwo ex", "win_rate": 58.0},
			{"deck": "Pikachu ex", "opponent": "Celebi ex", "win_rate": 38.5}
		]
	}`)

	table, err := LoadMatchupFile(path)
	if err != nil {
		t.Fatalf("LoadMatchupFile() error: %v", err)
	}

	if rate, ok := table.Rate("Pikachu ex", "Celebi ex"); !ok || rate != 38.5 {
		t.Errorf("Rate() = %v, %v", rate, ok)
	}
}
