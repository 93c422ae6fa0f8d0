package job

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeWriter struct {
	mu      sync.Mutex
	batches [][]*Job
}

func (f *fakeWriter) WriteJobs(ctx context.Context, sheet string, jobs []*Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, jobs)
	return nil
}

func (f *fakeWriter) written() [][]*Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]*Job, len(f.batches))
	copy(out, f.batches)
	return out
}

func TestWriteback_WritesInOrder(t *testing.T) {
	store := &fakeWriter{}
	wb := NewWriteback(store, "jobs", 8)

	ctx, cancel := context.WithCancel(context.Background())
	go wb.Run(ctx)

	wb.Enqueue([]*Job{{ID: "A"}})
	wb.Enqueue([]*Job{{ID: "B"}, {ID: "C"}})

	deadline := time.Now().Add(2 * time.Second)
	for len(store.written()) < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	wb.Wait()

	batches := store.written()
	if len(batches) != 2 {
		t.Fatalf("wrote %d batches, want 2", len(batches))
	}
	if batches[0][0].ID != "A" {
		t.Errorf("first batch = %s, want A", batches[0][0].ID)
	}
	if len(batches[1]) != 2 || batches[1][0].ID != "B" {
		t.Errorf("second batch = %v, want [B C]", batches[1])
	}
}

func TestWriteback_DrainsOnShutdown(t *testing.T) {
	store := &fakeWriter{}
	wb := NewWriteback(store, "jobs", 8)

	// Enqueue before the worker starts, then cancel immediately: the queued
	// batch must still be flushed during drain.
	wb.Enqueue([]*Job{{ID: "A"}})
	wb.Enqueue([]*Job{{ID: "B"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	go wb.Run(ctx)
	wb.Wait()

	if got := len(store.written()); got != 2 {
		t.Fatalf("drained %d batches, want 2", got)
	}
}

func TestWriteback_EmptyEnqueueIsNoOp(t *testing.T) {
	store := &fakeWriter{}
	wb := NewWriteback(store, "jobs", 1)

	wb.Enqueue(nil)
	wb.Enqueue([]*Job{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	go wb.Run(ctx)
	wb.Wait()

	if got := len(store.written()); got != 0 {
		t.Fatalf("wrote %d batches from empty enqueues, want 0", got)
	}
}
