// Package watcher imports snapshot files dropped into a directory.
package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/engine"
	"github.com/KK-18-dot/pokemon-tcgp-meta-app/internal/meta"
)

// Watcher watches a directory for snapshot JSON files and imports each
// new file into the snapshot history exactly once.
type Watcher struct {
	engine       *engine.Engine
	dir          string
	pollInterval time.Duration

	mu       sync.Mutex
	imported map[string]bool
}

// Config configures the watcher.
type Config struct {
	// Engine receives the imported snapshots.
	Engine *engine.Engine

	// Dir is the directory to watch.
	Dir string

	// PollInterval is the backup scan interval, used when file events
	// are delayed or missed. Default: 1 minute.
	PollInterval time.Duration
}

// New creates a new watcher.
func New(config *Config) (*Watcher, error) {
	if config.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if config.Dir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}

	pollInterval := config.PollInterval
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}

	return &Watcher{
		engine:       config.Engine,
		dir:          config.Dir,
		pollInterval: pollInterval,
		imported:     make(map[string]bool),
	}, nil
}

// Run watches the directory until the context is cancelled. Files
// already present at startup are imported first.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.scan(ctx)

	// Backup ticker in case file events are delayed or missed.
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.importFile(ctx, event.Name)
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

// scan imports every snapshot file in the directory that has not been
// imported yet.
func (w *Watcher) scan(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		log.Printf("scan %s: %v", w.dir, err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.importFile(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// importFile imports a single snapshot file. Non-JSON files and files
// already imported are skipped silently; parse failures are logged and
// the file is left for a later attempt.
func (w *Watcher) importFile(ctx context.Context, path string) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return
	}

	w.mu.Lock()
	done := w.imported[path]
	w.mu.Unlock()
	if done {
		return
	}

	snapshot, err := meta.LoadSnapshotFile(path)
	if err != nil {
		log.Printf("import %s: %v", path, err)
		return
	}

	if _, err := w.engine.ImportSnapshot(ctx, snapshot, nil); err != nil {
		log.Printf("import %s: %v", path, err)
		return
	}

	w.mu.Lock()
	w.imported[path] = true
	w.mu.Unlock()

	log.Printf("imported snapshot %s (%d decks)", filepath.Base(path), len(snapshot.Decks))
}
