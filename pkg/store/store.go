// Package store persists chart snapshots for the engine's callers.
//
// The engine itself never performs I/O: it emits patches and snapshots, and
// the caller picks a backend here to keep them. Four implementations share
// one interface:
//   - memory: in-memory storage for development and testing
//   - file: JSON files in a config directory for CLI usage
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for durable multi-chart setups
package store

import (
	"context"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/errors"
)

// Sentinel errors for store operations. Both carry structured codes so
// callers can map them without depending on this package's identities.
var (
	// ErrNotFound is returned when no snapshot exists under the given name.
	ErrNotFound = errors.New(errors.ErrCodeChartNotFound, "chart not found")

	// ErrInvalidName is returned for empty or path-unsafe chart names.
	ErrInvalidName = errors.New(errors.ErrCodeInvalidChart, "invalid chart name")
)

// Store is the interface for snapshot persistence backends.
// Implementations must treat snapshots as opaque values: load returns
// exactly what was saved last.
type Store interface {
	// Load retrieves a snapshot by chart name.
	// Returns ErrNotFound if no snapshot exists.
	Load(ctx context.Context, name string) (chart.Snapshot, error)

	// Save stores a snapshot under its chart name, replacing any previous
	// version.
	Save(ctx context.Context, name string, s chart.Snapshot) error

	// Delete removes a snapshot. Deleting a missing chart is a no-op.
	Delete(ctx context.Context, name string) error

	// List returns the stored chart names.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// validName rejects empty names and names with path separators, which the
// file backend would otherwise interpret as directories.
func validName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	for _, r := range name {
		if r == '/' || r == '\\' || r == 0 {
			return ErrInvalidName
		}
	}
	if name == "." || name == ".." {
		return ErrInvalidName
	}
	return nil
}
