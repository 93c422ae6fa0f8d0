// README: TTL snapshot cache with a blocking rate gate on refreshes.
package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Lister is the slice of the tabular store the cache needs.
type Lister interface {
	ListJobs(ctx context.Context, sheet string) ([]*Job, error)
	ListDrivers(ctx context.Context) ([]Driver, error)
}

// Snapshot is one coherent point-in-time read of the tabular store.
type Snapshot struct {
	Jobs      []*Job
	Drivers   []Driver
	FetchedAt time.Time
}

// JobsByDriver groups the snapshot's jobs by selected driver. Unassigned jobs
// are omitted.
func (s *Snapshot) JobsByDriver() map[string][]*Job {
	out := make(map[string][]*Job)
	for _, j := range s.Jobs {
		if j.SelectedDriver == "" {
			continue
		}
		out[j.SelectedDriver] = append(out[j.SelectedDriver], j)
	}
	return out
}

// SnapshotCache serves a cached snapshot to any number of concurrent readers.
// A stale snapshot is refreshed through the rate gate: callers that would
// exceed the refresh budget block until the window resets. That is deliberate
// backpressure on the costly external read, not an error.
type SnapshotCache struct {
	store Lister
	sheet string
	ttl   time.Duration
	gate  *rate.Limiter

	mu   sync.Mutex
	snap *Snapshot
}

func NewSnapshotCache(store Lister, sheet string, ttl, refreshEvery time.Duration, burst int) *SnapshotCache {
	return &SnapshotCache{
		store: store,
		sheet: sheet,
		ttl:   ttl,
		gate:  rate.NewLimiter(rate.Every(refreshEvery), burst),
	}
}

// Get returns the cached snapshot, refreshing it first if it has expired.
func (c *SnapshotCache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && time.Since(c.snap.FetchedAt) < c.ttl {
		return c.snap, nil
	}

	if err := c.gate.Wait(ctx); err != nil {
		return nil, fmt.Errorf("snapshot refresh gate: %w", err)
	}

	jobs, err := c.store.ListJobs(ctx, c.sheet)
	if err != nil {
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}
	drivers, err := c.store.ListDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}

	c.snap = &Snapshot{Jobs: jobs, Drivers: drivers, FetchedAt: time.Now()}
	return c.snap, nil
}

// Invalidate drops the cached snapshot so the next Get refetches.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
