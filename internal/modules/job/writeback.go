// README: Asynchronous single-writer queue persisting job mutations.
package job

import (
	"context"
	"log"
	"time"
)

// Writer is the slice of the tabular store the writeback queue needs.
type Writer interface {
	WriteJobs(ctx context.Context, sheet string, jobs []*Job) error
}

const (
	writeAttempts  = 3
	writeRetryWait = 2 * time.Second
)

// Writeback serializes all writes to the tabular store through one worker
// goroutine, giving at-least-once delivery. Writes are idempotent (keyed by
// job_id, full-row overwrite), so a retried batch is safe.
type Writeback struct {
	store Writer
	sheet string
	tasks chan []*Job
	done  chan struct{}
}

func NewWriteback(store Writer, sheet string, buffer int) *Writeback {
	return &Writeback{
		store: store,
		sheet: sheet,
		tasks: make(chan []*Job, buffer),
		done:  make(chan struct{}),
	}
}

// Enqueue schedules jobs for persistence. Fire-and-forget relative to the
// caller; blocks only when the buffer is full.
func (w *Writeback) Enqueue(jobs []*Job) {
	if len(jobs) == 0 {
		return
	}
	w.tasks <- jobs
}

// Run processes the queue until ctx is cancelled, then drains what is left.
func (w *Writeback) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case jobs := <-w.tasks:
			w.write(ctx, jobs)
		}
	}
}

// Wait blocks until Run has returned.
func (w *Writeback) Wait() {
	<-w.done
}

func (w *Writeback) drain() {
	for {
		select {
		case jobs := <-w.tasks:
			w.write(context.Background(), jobs)
		default:
			return
		}
	}
}

func (w *Writeback) write(ctx context.Context, jobs []*Job) {
	var err error
	for attempt := 1; attempt <= writeAttempts; attempt++ {
		if err = w.store.WriteJobs(ctx, w.sheet, jobs); err == nil {
			return
		}
		log.Printf("writeback attempt=%d jobs=%d err=%v", attempt, len(jobs), err)
		if attempt < writeAttempts {
			time.Sleep(writeRetryWait)
		}
	}
	log.Printf("writeback dropped after %d attempts jobs=%d err=%v", writeAttempts, len(jobs), err)
}
