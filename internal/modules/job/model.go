// README: Job and Driver records mirrored from the tabular store.
package job

import "drover/internal/types"

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Leg string

const (
	LegForward Leg = "Forward"
	LegReturn  Leg = "Return"
)

// Job is one vehicle movement from a collection point to a delivery point.
//
// The intake sheet creates jobs without ID, ClusterID, or SelectedDriver; the
// dispatch engine assigns those and later mutates OrderNo/Status/Active as
// completion events arrive. Jobs are never deleted by the engine.
type Job struct {
	ID types.ID

	CollectionPostcode string
	DeliveryPostcode   string
	CollectionDate     string // ISO date, may be empty or malformed
	DeliveryDate       string

	CollectionRegion string // RegionUnknown when unresolvable
	DeliveryRegion   string

	ClusterID types.ID
	Leg       Leg

	SelectedDriver string
	OrderNo        int // 1-based, gapless per driver
	Status         Status
	Active         bool

	// Row is the source sheet row the record was read from. It doubles as the
	// creation marker used by re-sequencing when a job never had an order.
	Row int
}

// Completed reports whether the job is in its terminal state.
func (j *Job) Completed() bool {
	return j.Status == StatusCompleted
}

// Driver is a candidate assignee. Name is the join key to Job.SelectedDriver
// and must be unique within the engine's view.
type Driver struct {
	Name     string
	Postcode string
}
