// README: Round-trip cluster grouping of one or two jobs.
package cluster

import (
	"context"

	"drover/internal/modules/job"
	"drover/internal/modules/location"
	"drover/internal/types"
)

// Resolver resolves postcodes to geography. Satisfied by *location.Service.
type Resolver interface {
	Resolve(ctx context.Context, postcode string) *location.PostcodeInfo
}

// Cluster groups one or two jobs into a driver's round trip. Jobs are ordered
// by intra-cluster position: index 0 is the Forward leg, index 1 (when
// present) the Return leg. A cluster is not persisted independently of its
// members' cluster IDs.
type Cluster struct {
	ID     types.ID
	Jobs   []*job.Job
	Driver string
}

// Forward returns the cluster's forward-leg job.
func (c *Cluster) Forward() *job.Job {
	return c.Jobs[0]
}

// jobGeo caches the resolved geography of one job's endpoints so the O(n²)
// pairwise pass does not re-resolve postcodes.
type jobGeo struct {
	collOutward string
	collRegion  string
	collCoord   *types.Coord

	delOutward string
	delRegion  string
	delCoord   *types.Coord
}

func resolveGeo(ctx context.Context, r Resolver, j *job.Job) jobGeo {
	g := jobGeo{
		collOutward: location.Outward(j.CollectionPostcode),
		delOutward:  location.Outward(j.DeliveryPostcode),
	}
	if info := r.Resolve(ctx, j.CollectionPostcode); info != nil {
		g.collRegion = info.Region
		if c, ok := info.Coord(); ok {
			g.collCoord = &c
		}
	}
	if info := r.Resolve(ctx, j.DeliveryPostcode); info != nil {
		g.delRegion = info.Region
		if c, ok := info.Coord(); ok {
			g.delCoord = &c
		}
	}
	return g
}
