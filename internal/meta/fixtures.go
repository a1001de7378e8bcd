package meta

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// snapshotFile is the on-disk JSON format for a field snapshot. It is
// the same shape the Limitless client consumes, so exported API
// responses can be dropped in as fixtures unchanged.
type snapshotFile struct {
	Season    string    `json:"season,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Decks     []Deck    `json:"decks"`
}

// matchupFile is the on-disk JSON format for a matchup table.
type matchupFile struct {
	Season   string `json:"season,omitempty"`
	Matchups []struct {
		Deck     string  `json:"deck"`
		Opponent string  `json:"opponent"`
		WinRate  float64 `json:"win_rate"`
	} `json:"matchups"`
}

// LoadSnapshotFile reads a field snapshot from a JSON file.
func LoadSnapshotFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse snapshot file %s: %w", path, err)
	}

	date := file.UpdatedAt
	if date.IsZero() {
		info, statErr := os.Stat(path)
		if statErr != nil {
			return nil, fmt.Errorf("stat snapshot file: %w", statErr)
		}
		date = info.ModTime()
	}

	return &Snapshot{Date: date, Decks: file.Decks}, nil
}

// LoadMatchupFile reads a matchup table from a JSON file.
func LoadMatchupFile(path string) (MatchupTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matchup file: %w", err)
	}

	var file matchupFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse matchup file %s: %w", path, err)
	}

	table := make(MatchupTable)
	for _, entry := range file.Matchups {
		if table[entry.Deck] == nil {
			table[entry.Deck] = make(map[string]float64)
		}
		table[entry.Deck][entry.Opponent] = entry.WinRate
	}

	return table, nil
}
