package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/orgcanvas/pkg/errors"
	"github.com/matzehuels/orgcanvas/pkg/geometry"
)

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// Marshal serializes a snapshot to pretty-printed JSON bytes.
// Positions are sorted by id for deterministic output.
func Marshal(s Snapshot) ([]byte, error) {
	sortPositions(s.Positions)
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes JSON bytes into a snapshot and validates it.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeInvalidChart, err, "unmarshal snapshot")
	}
	if err := Validate(s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// WriteFile writes a snapshot to a JSON file with 0644 permissions.
func WriteFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(s, f)
}

// Write writes a snapshot as indented JSON to w.
func Write(s Snapshot, w io.Writer) error {
	sortPositions(s.Positions)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadFile reads a snapshot from a JSON file.
func ReadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// Read decodes a snapshot from r.
func Read(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks structural invariants that serialization must reject:
// non-empty unique node ids and group ids. Dangling parent references are
// deliberately legal — the layout engine treats them as roots — and cyclic
// parent chains are recovered by the grid fallback, so neither is an error
// here.
func Validate(s Snapshot) error {
	seen := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidChart, "node with empty id")
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidChart, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	groups := make(map[string]struct{}, len(s.Groups))
	for _, g := range s.Groups {
		if g.ID == "" {
			return errors.New(errors.ErrCodeInvalidChart, "group with empty id")
		}
		if _, dup := groups[g.ID]; dup {
			return errors.New(errors.ErrCodeInvalidChart, "duplicate group id %q", g.ID)
		}
		groups[g.ID] = struct{}{}
	}

	for _, c := range s.Connections {
		if c.FromID == "" || c.ToID == "" {
			return errors.New(errors.ErrCodeInvalidChart, "connection %q with empty endpoint", c.ID)
		}
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// PositionList converts a position map to a list sorted by id.
func PositionList(m map[string]geometry.Point) []Position {
	out := make([]Position, 0, len(m))
	for id, p := range m {
		out = append(out, Position{ID: id, X: p.X, Y: p.Y})
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []Position) {
	slices.SortFunc(ps, func(a, b Position) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
