// README: Dispatch orchestrator; wires snapshots, geocoding, clustering,
// assignment, and sequencing behind the admin triggers.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"drover/internal/modules/assign"
	"drover/internal/modules/cluster"
	"drover/internal/modules/job"
	"drover/internal/modules/journal"
	"drover/internal/modules/location"
	"drover/internal/modules/sequence"
	"drover/internal/types"
)

var (
	ErrUnknownDriver = errors.New("no jobs assigned to driver")
	ErrNotFound      = sequence.ErrNotFound
)

// SnapshotSource serves point-in-time job/driver snapshots.
type SnapshotSource interface {
	Get(ctx context.Context) (*job.Snapshot, error)
	Invalidate()
}

// Persister schedules job mutations for write-back to the tabular store.
type Persister interface {
	Enqueue(jobs []*job.Job)
}

// Journal records engine transitions. Append failures must not fail the
// triggering operation.
type Journal interface {
	AppendEvent(ctx context.Context, e *journal.Event) error
	ListByJob(ctx context.Context, jobID types.ID) ([]*journal.Event, error)
}

// Geocoder batch-resolves postcodes into the shared cache.
type Geocoder interface {
	LookupMany(ctx context.Context, postcodes []string) (map[string]*location.PostcodeInfo, error)
}

type Service struct {
	snapshots SnapshotSource
	persist   Persister
	journal   Journal
	geocoder  Geocoder
	resolver  *location.Service
	clusterer *cluster.Service
	assigner  *assign.Service
	sequencer *sequence.Service
}

func NewService(
	snapshots SnapshotSource,
	persist Persister,
	jrnl Journal,
	geocoder Geocoder,
	resolver *location.Service,
	clusterer *cluster.Service,
	assigner *assign.Service,
	sequencer *sequence.Service,
) *Service {
	return &Service{
		snapshots: snapshots,
		persist:   persist,
		journal:   jrnl,
		geocoder:  geocoder,
		resolver:  resolver,
		clusterer: clusterer,
		assigner:  assigner,
		sequencer: sequencer,
	}
}

type ClusterReport struct {
	Jobs       int `json:"jobs"`
	Clusters   int `json:"clusters"`
	Pairs      int `json:"pairs"`
	Singletons int `json:"singletons"`
}

type AssignReport struct {
	Assigned int `json:"assigned"`
	Drivers  int `json:"drivers"`
}

// RunClustering pairs every not-yet-clustered job in the snapshot into
// round-trip clusters and persists the result. Jobs arriving from intake
// without an ID get one here.
func (s *Service) RunClustering(ctx context.Context) (ClusterReport, error) {
	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return ClusterReport{}, fmt.Errorf("clustering: %w", err)
	}

	var pending []*job.Job
	for _, j := range snap.Jobs {
		if j.ClusterID == "" {
			pending = append(pending, j)
		}
	}
	if len(pending) == 0 {
		return ClusterReport{}, nil
	}

	for _, j := range pending {
		if j.ID == "" {
			j.ID = types.ID(uuid.NewString())
		}
	}

	s.prefetchGeocodes(ctx, pending, nil)

	clusters := s.clusterer.Cluster(ctx, pending)

	report := ClusterReport{Jobs: len(pending), Clusters: len(clusters)}
	for _, c := range clusters {
		if len(c.Jobs) == 2 {
			report.Pairs++
		} else {
			report.Singletons++
		}
	}

	for _, j := range pending {
		j.CollectionRegion = s.resolver.Region(ctx, j.CollectionPostcode)
		j.DeliveryRegion = s.resolver.Region(ctx, j.DeliveryPostcode)
		s.record(ctx, &journal.Event{
			JobID:  j.ID,
			Type:   journal.EventClustered,
			Detail: string(j.ClusterID),
		})
	}

	s.persist.Enqueue(pending)
	s.snapshots.Invalidate()
	return report, nil
}

// RunAssignment distributes every unassigned job across the driver roster.
// Jobs that never went through clustering ride along as singletons.
func (s *Service) RunAssignment(ctx context.Context) (AssignReport, error) {
	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return AssignReport{}, fmt.Errorf("assignment: %w", err)
	}

	var unassigned, existing []*job.Job
	for _, j := range snap.Jobs {
		if j.SelectedDriver == "" {
			unassigned = append(unassigned, j)
		} else {
			existing = append(existing, j)
		}
	}
	if len(unassigned) == 0 || len(snap.Drivers) == 0 {
		return AssignReport{Drivers: len(snap.Drivers)}, nil
	}

	for _, j := range unassigned {
		if j.ID == "" {
			j.ID = types.ID(uuid.NewString())
		}
	}

	var driverPostcodes []string
	for _, d := range snap.Drivers {
		driverPostcodes = append(driverPostcodes, d.Postcode)
	}
	s.prefetchGeocodes(ctx, unassigned, driverPostcodes)

	clusters := s.clusterer.FromSnapshot(unassigned)
	res := s.assigner.Assign(ctx, clusters, existing, snap.Drivers)

	for _, j := range res.Assigned {
		s.record(ctx, &journal.Event{
			JobID:  j.ID,
			Driver: j.SelectedDriver,
			Type:   journal.EventAssigned,
			Detail: fmt.Sprintf("order_no=%d", j.OrderNo),
		})
	}

	s.persist.Enqueue(res.Assigned)
	s.snapshots.Invalidate()
	return AssignReport{Assigned: len(res.Assigned), Drivers: len(snap.Drivers)}, nil
}

// CompleteJob marks a job completed and re-sequences the driver's queue.
// Only the jobs whose queue state changed are written back.
func (s *Service) CompleteJob(ctx context.Context, jobID types.ID, driver string) ([]*job.Job, error) {
	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	driverJobs := snap.JobsByDriver()[driver]
	if len(driverJobs) == 0 {
		return nil, ErrUnknownDriver
	}

	changed, err := s.sequencer.Complete(driverJobs, jobID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, &journal.Event{
		JobID:  jobID,
		Driver: driver,
		Type:   journal.EventCompleted,
		Detail: fmt.Sprintf("resequenced=%d", len(changed)),
	})

	if len(changed) > 0 {
		s.persist.Enqueue(changed)
		s.snapshots.Invalidate()
	}
	return changed, nil
}

// DriverQueue returns one driver's jobs in queue order.
func (s *Service) DriverQueue(ctx context.Context, driver string) ([]*job.Job, error) {
	snap, err := s.snapshots.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("driver queue: %w", err)
	}
	queue := snap.JobsByDriver()[driver]
	if len(queue) == 0 {
		return nil, ErrUnknownDriver
	}
	sort.SliceStable(queue, func(i, k int) bool {
		return queue[i].OrderNo < queue[k].OrderNo
	})
	return queue, nil
}

// LookupPostcodes batch-populates the postcode cache.
func (s *Service) LookupPostcodes(ctx context.Context, postcodes []string) (map[string]*location.PostcodeInfo, error) {
	return s.geocoder.LookupMany(ctx, postcodes)
}

// JobEvents returns the journal trail for one job.
func (s *Service) JobEvents(ctx context.Context, jobID types.ID) ([]*journal.Event, error) {
	return s.journal.ListByJob(ctx, jobID)
}

// prefetchGeocodes batch-resolves every postcode the local table and cache
// cannot answer, so the scoring passes see coordinates where possible.
func (s *Service) prefetchGeocodes(ctx context.Context, jobs []*job.Job, extra []string) {
	var missing []string
	add := func(pc string) {
		if location.Normalize(pc) == "" {
			return
		}
		if s.resolver.Resolve(ctx, pc) == nil {
			missing = append(missing, pc)
		}
	}
	for _, j := range jobs {
		add(j.CollectionPostcode)
		add(j.DeliveryPostcode)
	}
	for _, pc := range extra {
		add(pc)
	}
	if len(missing) == 0 {
		return
	}
	if _, err := s.geocoder.LookupMany(ctx, missing); err != nil {
		log.Printf("geocode prefetch failed count=%d err=%v", len(missing), err)
	}
}

func (s *Service) record(ctx context.Context, e *journal.Event) {
	if err := s.journal.AppendEvent(ctx, e); err != nil {
		log.Printf("journal append failed job=%s type=%s err=%v", e.JobID, e.Type, err)
	}
}
