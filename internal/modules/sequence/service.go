// README: Per-driver job queue state machine; re-sequences on completion.
package sequence

import (
	"errors"
	"sort"

	"drover/internal/modules/job"
	"drover/internal/types"
)

var ErrNotFound = errors.New("job not found in driver queue")

// Change records one job's queue state before and after a re-sequencing pass.
type Change struct {
	Job *job.Job

	prevOrder  int
	prevStatus job.Status
	prevActive bool
}

// Service maintains the per-driver ordered queue invariant: order numbers are
// a contiguous 1..N sequence and exactly one job is active unless every job
// is completed. The pass is self-healing: duplicate or missing order numbers
// found in the input are corrected, never surfaced as an error.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Complete marks the identified job completed within the driver's queue and
// re-sequences the whole queue. It returns only the jobs whose order, status,
// or active flag actually changed, minimizing external writes.
//
// Completing an already-completed job is a no-op for every other job: the
// re-sequencing pass is a fixed point on consistent input.
func (s *Service) Complete(driverJobs []*job.Job, jobID types.ID) ([]*job.Job, error) {
	var target *job.Job
	for _, j := range driverJobs {
		if j.ID == jobID {
			target = j
			break
		}
	}
	if target == nil {
		return nil, ErrNotFound
	}

	target.Status = job.StatusCompleted
	target.Active = false

	return s.Resequence(driverJobs), nil
}

// Resequence restores the queue invariant for one driver's jobs and returns
// the jobs that changed.
func (s *Service) Resequence(driverJobs []*job.Job) []*job.Job {
	before := make([]Change, len(driverJobs))
	for i, j := range driverJobs {
		before[i] = Change{Job: j, prevOrder: j.OrderNo, prevStatus: j.Status, prevActive: j.Active}
	}

	sorted := make([]*job.Job, len(driverJobs))
	copy(sorted, driverJobs)
	sort.SliceStable(sorted, func(i, k int) bool {
		return queueLess(sorted[i], sorted[k])
	})

	// Completed jobs keep their slot in the sequence; the first job in sort
	// order that is not completed becomes the active one.
	activeSet := false
	for i, j := range sorted {
		j.OrderNo = i + 1
		if j.Completed() {
			j.Active = false
			continue
		}
		if !activeSet {
			j.Status = job.StatusActive
			j.Active = true
			activeSet = true
			continue
		}
		j.Status = job.StatusPending
		j.Active = false
	}

	var changed []*job.Job
	for _, c := range before {
		if c.Job.OrderNo != c.prevOrder || c.Job.Status != c.prevStatus || c.Job.Active != c.prevActive {
			changed = append(changed, c.Job)
		}
	}
	return changed
}

// queueLess orders a driver's queue: existing order numbers first, then the
// creation marker, then job ID, for jobs that never had an order.
func queueLess(a, b *job.Job) bool {
	switch {
	case a.OrderNo > 0 && b.OrderNo > 0 && a.OrderNo != b.OrderNo:
		return a.OrderNo < b.OrderNo
	case a.OrderNo > 0 && b.OrderNo == 0:
		return true
	case a.OrderNo == 0 && b.OrderNo > 0:
		return false
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.ID < b.ID
}
