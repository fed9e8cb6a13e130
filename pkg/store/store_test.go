package store

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	cerrors "github.com/matzehuels/orgcanvas/pkg/errors"
)

func testSnapshot() chart.Snapshot {
	return chart.Snapshot{
		Name:  "engineering",
		Nodes: []chart.Node{{ID: "ceo", Name: "Avery"}, {ID: "cto", ParentID: "ceo", Name: "Sam"}},
		Positions: []chart.Position{
			{ID: "ceo", X: 200, Y: 40},
			{ID: "cto", X: 200, Y: 180},
		},
	}
}

// runStoreTests exercises the Store contract against any backend.
func runStoreTests(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}

	snap := testSnapshot()
	if err := s.Save(ctx, "engineering", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "engineering")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Nodes) != 2 || got.Nodes[1].ParentID != "ceo" {
		t.Errorf("Load() = %+v, want saved snapshot back", got)
	}
	if len(got.Positions) != 2 || got.Positions[0].X != 200 {
		t.Errorf("Load() positions = %+v, want saved positions", got.Positions)
	}

	// Save replaces.
	snap.Nodes = snap.Nodes[:1]
	if err := s.Save(ctx, "engineering", snap); err != nil {
		t.Fatalf("Save() replace error = %v", err)
	}
	got, _ = s.Load(ctx, "engineering")
	if len(got.Nodes) != 1 {
		t.Errorf("nodes after replace = %d, want 1", len(got.Nodes))
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 || names[0] != "engineering" {
		t.Errorf("List() = %v, want [engineering]", names)
	}

	if err := s.Delete(ctx, "engineering"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Load(ctx, "engineering"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting a missing chart is a no-op.
	if err := s.Delete(ctx, "engineering"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	runStoreTests(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()
	runStoreTests(t, s)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	if err := s1.Save(ctx, "sales", testSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	s1.Close()

	s2, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() reopen error = %v", err)
	}
	defer s2.Close()

	got, err := s2.Load(ctx, "sales")
	if err != nil {
		t.Fatalf("Load() after reopen error = %v", err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("nodes after reopen = %d, want 2", len(got.Nodes))
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"engineering", true},
		{"team-2026", true},
		{"", false},
		{"a/b", false},
		{`a\b`, false},
		{".", false},
		{"..", false},
	}
	for _, tt := range tests {
		err := validName(tt.name)
		if tt.valid && err != nil {
			t.Errorf("validName(%q) = %v, want nil", tt.name, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidName) {
			t.Errorf("validName(%q) = %v, want ErrInvalidName", tt.name, err)
		}
	}
}

// The sentinels carry structured codes so HTTP and CLI surfaces can map them
// without importing this package's identities.
func TestSentinels_CarryCodes(t *testing.T) {
	if !cerrors.Is(ErrNotFound, cerrors.ErrCodeChartNotFound) {
		t.Errorf("ErrNotFound code = %q, want %q", cerrors.GetCode(ErrNotFound), cerrors.ErrCodeChartNotFound)
	}
	if !cerrors.Is(ErrInvalidName, cerrors.ErrCodeInvalidChart) {
		t.Errorf("ErrInvalidName code = %q, want %q", cerrors.GetCode(ErrInvalidName), cerrors.ErrCodeInvalidChart)
	}
}

func TestMemoryStore_SavedSnapshotNotAliased(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	snap := testSnapshot()
	if err := s.Save(ctx, "org", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	snap.Nodes[0].Name = "mutated"

	got, err := s.Load(ctx, "org")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Nodes[0].Name != "Avery" {
		t.Errorf("stored name = %q, want snapshot isolated from caller mutation", got.Nodes[0].Name)
	}
}
