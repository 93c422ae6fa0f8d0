// README: Dispatch event records for the audit trail.
package journal

import (
	"time"

	"drover/internal/types"
)

type EventType string

const (
	EventClustered EventType = "clustered"
	EventAssigned  EventType = "assigned"
	EventCompleted EventType = "completed"
)

// Event is one engine transition applied to a job.
type Event struct {
	ID        int64
	JobID     types.ID
	Driver    string
	Type      EventType
	Detail    string
	CreatedAt time.Time
}
