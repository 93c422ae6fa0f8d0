// README: Dispatch event journal backed by PostgreSQL.
package journal

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"drover/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(ctx, `
        INSERT INTO dispatch_events (
            job_id, driver, event_type, detail, created_at
        ) VALUES ($1, $2, $3, $4, $5)`,
		string(e.JobID),
		e.Driver,
		string(e.Type),
		e.Detail,
		e.CreatedAt,
	)
	return err
}

func (s *Store) ListByJob(ctx context.Context, jobID types.ID) ([]*Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, job_id, driver, event_type, detail, created_at
        FROM dispatch_events
        WHERE job_id = $1
        ORDER BY id`, string(jobID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.JobID, &e.Driver, &e.Type, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
