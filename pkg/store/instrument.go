package store

import (
	"context"
	"time"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	"github.com/matzehuels/orgcanvas/pkg/observability"
)

// InstrumentedStore wraps a Store and reports operation timings through the
// observability hooks.
type InstrumentedStore struct {
	inner Store
}

// Instrument wraps s with observability reporting. With no hooks registered
// the overhead is a clock read per operation.
func Instrument(s Store) *InstrumentedStore {
	return &InstrumentedStore{inner: s}
}

func (i *InstrumentedStore) Load(ctx context.Context, name string) (chart.Snapshot, error) {
	start := time.Now()
	snap, err := i.inner.Load(ctx, name)
	observability.Store().OnLoad(ctx, name, time.Since(start), err)
	return snap, err
}

func (i *InstrumentedStore) Save(ctx context.Context, name string, s chart.Snapshot) error {
	start := time.Now()
	err := i.inner.Save(ctx, name, s)
	observability.Store().OnSave(ctx, name, time.Since(start), err)
	return err
}

func (i *InstrumentedStore) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := i.inner.Delete(ctx, name)
	observability.Store().OnDelete(ctx, name, time.Since(start), err)
	return err
}

func (i *InstrumentedStore) List(ctx context.Context) ([]string, error) {
	return i.inner.List(ctx)
}

func (i *InstrumentedStore) Close() error {
	return i.inner.Close()
}

// Ensure InstrumentedStore implements Store.
var _ Store = (*InstrumentedStore)(nil)
