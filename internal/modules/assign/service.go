// README: Assignment engine; coverage guarantee pass then load-balanced distribution.
package assign

import (
	"context"
	"math"
	"sort"

	"drover/internal/config"
	"drover/internal/modules/cluster"
	"drover/internal/modules/job"
	"drover/internal/modules/location"
	"drover/internal/types"
)

// Resolver resolves postcodes to geography. Satisfied by *location.Service.
type Resolver interface {
	Resolve(ctx context.Context, postcode string) *location.PostcodeInfo
}

// Result lists every job mutated by an assignment pass, in assignment order.
type Result struct {
	Assigned []*job.Job
}

// Service matches clusters to drivers in two phases: a guarantee phase that
// leaves no driver without work while unassigned jobs remain, then a
// load-balanced distribution of the remainder. All tie-breaks are
// deterministic: region match, then load, then distance, then input order.
type Service struct {
	resolver Resolver
	cfg      config.DispatchConfig
}

func NewService(resolver Resolver, cfg config.DispatchConfig) *Service {
	return &Service{resolver: resolver, cfg: cfg}
}

// driverState tracks one candidate driver across the pass.
type driverState struct {
	driver    job.Driver
	idx       int // roster input order, the final tie-break
	region    string
	coord     *types.Coord
	load      int
	hasActive bool
}

// pooled is one unassigned cluster awaiting a driver.
type pooled struct {
	cluster cluster.Cluster
	idx     int // arrival order
	region  string // forward leg collection region
	coord   *types.Coord
}

// Assign distributes the given clusters across the drivers. existing is the
// full job snapshot and supplies current per-driver load and active state.
// With zero drivers the pass is a no-op returning an empty result; a job is
// never dropped, even when it has no resolvable location data.
func (s *Service) Assign(ctx context.Context, clusters []cluster.Cluster, existing []*job.Job, drivers []job.Driver) Result {
	if len(drivers) == 0 {
		return Result{}
	}

	states := s.driverStates(ctx, existing, drivers)
	pool := s.pool(ctx, clusters)

	var res Result

	// Phase 1 — coverage guarantee. Every driver with no current work claims
	// the best available cluster; the relaxed scorer always finds one while
	// the pool is non-empty.
	for _, d := range states {
		if d.load > 0 || len(pool) == 0 {
			continue
		}
		best := s.claimFor(d, pool)
		s.give(d, pool[best].cluster, &res)
		pool = append(pool[:best], pool[best+1:]...)
	}

	// Phase 2 — load-balanced remainder, in arrival order. Two-job clusters
	// go to one driver whole so the round trip survives.
	for _, p := range pool {
		d := s.pickDriver(states, p)
		s.give(d, p.cluster, &res)
	}

	return res
}

func (s *Service) driverStates(ctx context.Context, existing []*job.Job, drivers []job.Driver) []*driverState {
	states := make([]*driverState, len(drivers))
	for i, d := range drivers {
		st := &driverState{driver: d, idx: i}
		if info := s.resolver.Resolve(ctx, d.Postcode); info != nil {
			st.region = info.Region
			if c, ok := info.Coord(); ok {
				st.coord = &c
			}
		}
		states[i] = st
	}

	byName := make(map[string]*driverState, len(states))
	for _, st := range states {
		byName[st.driver.Name] = st
	}
	for _, j := range existing {
		st, ok := byName[j.SelectedDriver]
		if !ok {
			continue
		}
		st.load++
		if j.Status == job.StatusActive {
			st.hasActive = true
		}
	}
	return states
}

func (s *Service) pool(ctx context.Context, clusters []cluster.Cluster) []pooled {
	pool := make([]pooled, 0, len(clusters))
	for i, c := range clusters {
		if len(c.Jobs) == 0 {
			continue
		}
		p := pooled{cluster: c, idx: i}
		fwd := c.Forward()
		if info := s.resolver.Resolve(ctx, fwd.CollectionPostcode); info != nil {
			p.region = info.Region
			if co, ok := info.Coord(); ok {
				p.coord = &co
			}
		}
		pool = append(pool, p)
	}
	return pool
}

// claimFor finds the best cluster for an empty driver using the relaxed
// tiered scorer: same-region first (distance as tie-break), then anything
// within the guarantee band, then an unconditional fallback. The last tier
// accepts any job, so the driver is never left empty while work remains.
func (s *Service) claimFor(d *driverState, pool []pooled) int {
	best := 0
	bestTier, bestDist := math.MaxInt, math.Inf(1)
	for i, p := range pool {
		tier := 2
		dist := location.DistanceMiles(d.coord, p.coord)
		switch {
		case location.RegionsMatch(d.region, p.region):
			tier = 0
		case dist <= s.cfg.GuaranteeBandMiles:
			tier = 1
		}
		if tier < bestTier || (tier == bestTier && dist < bestDist) {
			best, bestTier, bestDist = i, tier, dist
		}
	}
	return best
}

// pickDriver selects the phase-2 driver for a cluster. Candidates are drivers
// in the same region, within the candidate band, or — when the job carries no
// distance data at all — everyone. An empty candidate list falls back to the
// globally least-loaded driver regardless of distance.
func (s *Service) pickDriver(states []*driverState, p pooled) *driverState {
	type scored struct {
		st          *driverState
		regionMatch bool
		dist        float64
	}

	var candidates []scored
	for _, st := range states {
		dist := location.DistanceMiles(st.coord, p.coord)
		match := location.RegionsMatch(st.region, p.region)
		if match || dist <= s.cfg.CandidateBandMiles || p.coord == nil {
			candidates = append(candidates, scored{st: st, regionMatch: match, dist: dist})
		}
	}

	if len(candidates) == 0 {
		least := states[0]
		for _, st := range states[1:] {
			if st.load < least.load {
				least = st
			}
		}
		return least
	}

	sort.SliceStable(candidates, func(i, k int) bool {
		a, b := candidates[i], candidates[k]
		if a.regionMatch != b.regionMatch {
			return a.regionMatch
		}
		if a.st.load != b.st.load {
			return a.st.load < b.st.load
		}
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		return a.st.idx < b.st.idx
	})
	return candidates[0].st
}

// give hands a whole cluster to a driver, extending their queue. The driver's
// first non-completed job stays the sole active one.
func (s *Service) give(d *driverState, c cluster.Cluster, res *Result) {
	for _, j := range c.Jobs {
		d.load++
		j.SelectedDriver = d.driver.Name
		j.OrderNo = d.load
		if !d.hasActive {
			j.Status = job.StatusActive
			j.Active = true
			d.hasActive = true
		} else {
			j.Status = job.StatusPending
			j.Active = false
		}
		res.Assigned = append(res.Assigned, j)
	}
}
