package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/orgcanvas/pkg/chart"
)

// FileStore persists snapshots as JSON files in a directory, one file per
// chart. This is the default backend for CLI usage.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/orgcanvas/charts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "orgcanvas", "charts")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (f *FileStore) chartPath(name string) string {
	return filepath.Join(f.baseDir, name+".json")
}

// Load retrieves a snapshot by name.
func (f *FileStore) Load(ctx context.Context, name string) (chart.Snapshot, error) {
	if err := validName(name); err != nil {
		return chart.Snapshot{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.chartPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return chart.Snapshot{}, ErrNotFound
		}
		return chart.Snapshot{}, fmt.Errorf("read chart file: %w", err)
	}
	return chart.Unmarshal(data)
}

// Save writes the snapshot to its chart file with 0600 permissions.
func (f *FileStore) Save(ctx context.Context, name string, s chart.Snapshot) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := chart.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.chartPath(name), data, 0600); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	return nil
}

// Delete removes the chart file. Missing files are a no-op.
func (f *FileStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.chartPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove chart file: %w", err)
	}
	return nil
}

// List returns the chart names found in the directory, sorted by the
// filesystem's directory order.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	entries, err := os.ReadDir(f.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read chart dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}

// Close does nothing for the file store.
func (f *FileStore) Close() error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
