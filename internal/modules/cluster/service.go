// README: Clustering engine; greedy pairing of complementary jobs.
package cluster

import (
	"context"

	"github.com/google/uuid"

	"drover/internal/config"
	"drover/internal/modules/job"
	"drover/internal/modules/location"
	"drover/internal/types"
)

// Service pairs jobs into forward/return round-trip clusters.
type Service struct {
	resolver Resolver
	cfg      config.DispatchConfig
}

func NewService(resolver Resolver, cfg config.DispatchConfig) *Service {
	return &Service{resolver: resolver, cfg: cfg}
}

// Cluster partitions the given jobs into clusters of one or two. The pass is
// greedy and deterministic: jobs are visited in input order, each unclustered
// job takes its minimum-score partner when that score beats the threshold,
// and clustered jobs are never reconsidered. Every job ends in exactly one
// cluster. Cluster IDs, legs, and member order are written onto the jobs.
func (s *Service) Cluster(ctx context.Context, jobs []*job.Job) []Cluster {
	geos := make([]jobGeo, len(jobs))
	for i, j := range jobs {
		geos[i] = resolveGeo(ctx, s.resolver, j)
	}

	clustered := make([]bool, len(jobs))
	clusters := make([]Cluster, 0, len(jobs))

	for i := range jobs {
		if clustered[i] {
			continue
		}
		best := -1
		bestScore := 0
		for k := range jobs {
			if k == i || clustered[k] {
				continue
			}
			sc := pairScore(geos[i], geos[k], jobs[i].DeliveryDate, jobs[k].CollectionDate, s.cfg)
			if best == -1 || sc < bestScore {
				best, bestScore = k, sc
			}
		}

		if best != -1 && bestScore < s.cfg.ClusterScoreThreshold {
			clusters = append(clusters, s.pairCluster(jobs[i], jobs[best]))
			clustered[i], clustered[best] = true, true
			continue
		}
		clusters = append(clusters, s.singleton(jobs[i]))
		clustered[i] = true
	}

	return clusters
}

// FromSnapshot rebuilds cluster groupings from jobs that already carry a
// cluster ID. Jobs without one become singletons (the engine never leaves a
// job outside some cluster).
func (s *Service) FromSnapshot(jobs []*job.Job) []Cluster {
	byID := make(map[types.ID]*Cluster)
	clusters := make([]Cluster, 0, len(jobs))
	order := make([]types.ID, 0, len(jobs))

	for _, j := range jobs {
		if j.ClusterID == "" {
			clusters = append(clusters, s.singleton(j))
			continue
		}
		c, ok := byID[j.ClusterID]
		if !ok {
			order = append(order, j.ClusterID)
			byID[j.ClusterID] = &Cluster{ID: j.ClusterID, Jobs: []*job.Job{j}}
			continue
		}
		// Keep Forward ahead of Return regardless of snapshot row order.
		if j.Leg == job.LegForward {
			c.Jobs = append([]*job.Job{j}, c.Jobs...)
		} else {
			c.Jobs = append(c.Jobs, j)
		}
	}

	for _, id := range order {
		clusters = append(clusters, *byID[id])
	}
	return clusters
}

// pairCluster forms a two-job cluster, designating Forward and Return.
// Preference: earlier collection date; tie or missing dates fall back to
// lexicographic collection outward codes; still indeterminate keeps input
// order.
func (s *Service) pairCluster(a, b *job.Job) Cluster {
	forward, ret := a, b
	if !forwardFirst(a, b) {
		forward, ret = b, a
	}

	id := types.ID(uuid.NewString())
	forward.ClusterID, ret.ClusterID = id, id
	forward.Leg, ret.Leg = job.LegForward, job.LegReturn
	return Cluster{ID: id, Jobs: []*job.Job{forward, ret}}
}

func (s *Service) singleton(j *job.Job) Cluster {
	id := types.ID(uuid.NewString())
	j.ClusterID = id
	j.Leg = job.LegForward
	return Cluster{ID: id, Jobs: []*job.Job{j}}
}

func forwardFirst(a, b *job.Job) bool {
	da, okA := parseDate(a.CollectionDate)
	db, okB := parseDate(b.CollectionDate)
	switch {
	case okA && okB && !da.Equal(db):
		return da.Before(db)
	case okA && !okB:
		return true
	case !okA && okB:
		return false
	}

	oa, ob := outwardOrArea(a.CollectionPostcode), outwardOrArea(b.CollectionPostcode)
	if oa != ob {
		return oa < ob
	}
	return true // indeterminate: preserve input order
}

func outwardOrArea(postcode string) string {
	if o := location.Outward(postcode); o != "" {
		return o
	}
	return location.Area(postcode)
}
