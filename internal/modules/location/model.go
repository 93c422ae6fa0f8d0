// README: Resolved postcode geography value type.
package location

import "drover/internal/types"

// RegionUnknown is the sentinel written to job records whose postcode could
// not be resolved.
const RegionUnknown = "UNKNOWN"

// PostcodeInfo is the resolved geography of one postcode. Region may be empty
// and the coordinates nil: an unresolvable postcode is cached as an explicitly
// empty PostcodeInfo so it is not re-fetched every cycle.
type PostcodeInfo struct {
	Region string   `json:"region"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
}

// Coord returns the coordinates and whether they are present.
func (p *PostcodeInfo) Coord() (types.Coord, bool) {
	if p == nil || p.Lat == nil || p.Lng == nil {
		return types.Coord{}, false
	}
	return types.Coord{Lat: *p.Lat, Lng: *p.Lng}, true
}

func coords(lat, lng float64) (*float64, *float64) {
	return &lat, &lng
}
