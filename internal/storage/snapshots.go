package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// ErrNotFound is returned when no snapshot matches the query.
var ErrNotFound = errors.New("snapshot not found")

// StoredSnapshot is a snapshot as persisted, with its matchup table.
type StoredSnapshot struct {
	ID       int64
	Season   string
	Snapshot *meta.Snapshot
	Matchups meta.MatchupTable
}

// SnapshotStore persists and retrieves field snapshots.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a snapshot store backed by db.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// SaveSnapshot persists a snapshot and its matchup table atomically and
// returns the new snapshot ID. Deck order is preserved.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, season string, snapshot *meta.Snapshot, matchups meta.MatchupTable) (int64, error) {
	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (season, captured_at) VALUES (?, ?)`,
		season, snapshot.Date,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot id: %w", err)
	}

	deckStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_decks (snapshot_id, position, name, share, win_rate, wins, losses, ties)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare deck insert: %w", err)
	}
	defer deckStmt.Close()

	for i, deck := range snapshot.Decks {
		if _, err := deckStmt.ExecContext(ctx, id, i, deck.Name, deck.Share, deck.WinRate, deck.Wins, deck.Losses, deck.Ties); err != nil {
			return 0, fmt.Errorf("failed to insert deck %s: %w", deck.Name, err)
		}
	}

	if len(matchups) > 0 {
		matchupStmt, err := tx.PrepareContext(ctx,
			`INSERT INTO snapshot_matchups (snapshot_id, deck, opponent, win_rate) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("failed to prepare matchup insert: %w", err)
		}
		defer matchupStmt.Close()

		for deck, opponents := range matchups {
			for opponent, rate := range opponents {
				if _, err := matchupStmt.ExecContext(ctx, id, deck, opponent, rate); err != nil {
					return 0, fmt.Errorf("failed to insert matchup %s vs %s: %w", deck, opponent, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, nil
}

// ListSnapshots returns all snapshots for a season ordered oldest to
// newest, decks included. Matchup tables are not loaded; use GetLatest
// for the full table.
func (s *SnapshotStore) ListSnapshots(ctx context.Context, season string) ([]*meta.Snapshot, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT id, captured_at FROM snapshots WHERE season = ? ORDER BY captured_at ASC, id ASC`,
		season,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	type header struct {
		id       int64
		snapshot *meta.Snapshot
	}
	var headers []header
	for rows.Next() {
		var h header
		h.snapshot = &meta.Snapshot{}
		if err := rows.Scan(&h.id, &h.snapshot.Date); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	for _, h := range headers {
		decks, err := s.loadDecks(ctx, h.id)
		if err != nil {
			return nil, err
		}
		h.snapshot.Decks = decks
	}

	snapshots := make([]*meta.Snapshot, len(headers))
	for i, h := range headers {
		snapshots[i] = h.snapshot
	}
	return snapshots, nil
}

// GetLatest returns the most recent snapshot for a season with its
// matchup table, or ErrNotFound if the season has no snapshots.
func (s *SnapshotStore) GetLatest(ctx context.Context, season string) (*StoredSnapshot, error) {
	stored := StoredSnapshot{Season: season, Snapshot: &meta.Snapshot{}}
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, captured_at FROM snapshots WHERE season = ? ORDER BY captured_at DESC, id DESC LIMIT 1`,
		season,
	).Scan(&stored.ID, &stored.Snapshot.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	decks, err := s.loadDecks(ctx, stored.ID)
	if err != nil {
		return nil, err
	}
	stored.Snapshot.Decks = decks

	matchups, err := s.loadMatchups(ctx, stored.ID)
	if err != nil {
		return nil, err
	}
	stored.Matchups = matchups

	return &stored, nil
}

// Prune deletes all but the newest keep snapshots for a season and
// returns how many were removed. Deck and matchup rows cascade.
func (s *SnapshotStore) Prune(ctx context.Context, season string, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative, got %d", keep)
	}

	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM snapshots WHERE season = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE season = ? ORDER BY captured_at DESC, id DESC LIMIT ?
		)`,
		season, season, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	return removed, nil
}

func (s *SnapshotStore) loadDecks(ctx context.Context, snapshotID int64) ([]meta.Deck, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT name, share, win_rate, wins, losses, ties
		 FROM snapshot_decks WHERE snapshot_id = ? ORDER BY position ASC`,
		snapshotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	var decks []meta.Deck
	for rows.Next() {
		var deck meta.Deck
		if err := rows.Scan(&deck.Name, &deck.Share, &deck.WinRate, &deck.Wins, &deck.Losses, &deck.Ties); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}
	return decks, nil
}

func (s *SnapshotStore) loadMatchups(ctx context.Context, snapshotID int64) (meta.MatchupTable, error) {
	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT deck, opponent, win_rate FROM snapshot_matchups WHERE snapshot_id = ?`,
		snapshotID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchups: %w", err)
	}
	defer rows.Close()

	table := make(meta.MatchupTable)
	for rows.Next() {
		var deck, opponent string
		var rate float64
		if err := rows.Scan(&deck, &opponent, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan matchup: %w", err)
		}
		if table[deck] == nil {
			table[deck] = make(map[string]float64)
		}
		table[deck][opponent] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matchups: %w", err)
	}
	return table, nil
}
