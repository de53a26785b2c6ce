package tools

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/webref/mcp-server/internal/dataset"
)

// DataDirEnv names the optional override directory. When set, dataset
// files found there replace the embedded ones, and the directory is
// watched so regenerated files take effect without a restart.
const DataDirEnv = "WEBREF_DATA_DIR"

// datasetManager holds one atomically swappable query façade per
// language. Queries load the pointer lock-free; reloads build a fresh
// store and swap it in, so a long-lived server serves concurrent
// lookups against immutable snapshots.
type datasetManager struct {
	reloadMu sync.Mutex // serializes reloads
	current  map[string]*atomic.Pointer[dataset.Queries]
	watcher  *fsnotify.Watcher
}

var manager = newDatasetManager()

func newDatasetManager() *datasetManager {
	m := &datasetManager{current: make(map[string]*atomic.Pointer[dataset.Queries])}
	for language := range dataset.Schemas {
		m.current[language] = &atomic.Pointer[dataset.Queries]{}
	}
	return m
}

// datasetFile returns the file name carrying one language's dataset.
func datasetFile(language string) string {
	return language + ".json"
}

// overrideDir returns the configured data directory, or "" when the
// embedded datasets are in use.
func overrideDir() string {
	return os.Getenv(DataDirEnv)
}

// DatasetBytes resolves a dataset's raw JSON: the override directory
// when configured and present, the embedded copy otherwise.
func DatasetBytes(language string) ([]byte, error) {
	if dir := overrideDir(); dir != "" {
		path := filepath.Join(dir, datasetFile(language))
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	data, err := defaultDataProvider.ReadFile("data/" + datasetFile(language))
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s dataset: %w", language, err)
	}
	return data, nil
}

// LoadDatasets loads every supported language dataset and installs
// its query façade. Called once at startup; a failure on any dataset
// is fatal since a missing store would make queries lie later.
func LoadDatasets() error {
	for language := range dataset.Schemas {
		if err := reloadDataset(language); err != nil {
			return err
		}
	}
	return nil
}

// reloadDataset builds a fresh store for one language and atomically
// swaps it into place. Old snapshots remain valid for in-flight
// readers; the garbage collector retires them.
func reloadDataset(language string) error {
	manager.reloadMu.Lock()
	defer manager.reloadMu.Unlock()

	schema, ok := dataset.Schemas[language]
	if !ok {
		return fmt.Errorf("unsupported language %q", language)
	}
	data, err := DatasetBytes(language)
	if err != nil {
		return err
	}
	store, err := dataset.Parse(schema, data)
	if err != nil {
		return err
	}
	manager.current[language].Store(dataset.NewQueries(store))
	return nil
}

// Queries returns the current query façade for a language. The
// not-initialized case is surfaced explicitly rather than as an empty
// result set.
func Queries(language string) (*dataset.Queries, error) {
	ptr, ok := manager.current[language]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q (want one of javascript, css, html)", language)
	}
	q := ptr.Load()
	if q == nil {
		return nil, dataset.ErrNotInitialized
	}
	return q, nil
}

// WatchDataDir starts watching the override directory, reloading a
// dataset whenever its file is rewritten. A no-op when no override
// directory is configured.
func WatchDataDir() error {
	dir := overrideDir()
	if dir == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	manager.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				base := filepath.Base(event.Name)
				for language := range dataset.Schemas {
					if base != datasetFile(language) {
						continue
					}
					if err := reloadDataset(language); err != nil {
						log.Printf("Warning: reload of %s dataset failed, keeping previous snapshot: %v", language, err)
						continue
					}
					log.Printf("✓ Reloaded %s dataset from %s", language, event.Name)
					if err := RebuildSearchIndex(); err != nil {
						log.Printf("Warning: search index rebuild failed: %v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Warning: dataset watcher error: %v", err)
			}
		}
	}()

	log.Printf("✓ Watching %s for dataset changes", dir)
	return nil
}

// CloseDatasets stops the override-directory watcher if one is
// running.
func CloseDatasets() error {
	if manager.watcher != nil {
		return manager.watcher.Close()
	}
	return nil
}
