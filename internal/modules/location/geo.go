// Package location — geo contains pure geographic computation helpers.
package location

import (
	"math"
	"strings"

	"drover/internal/types"
)

const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance in miles between two
// points. Either point being nil yields +Inf, which downstream scoring treats
// as worst case.
func DistanceMiles(a, b *types.Coord) float64 {
	if a == nil || b == nil {
		return math.Inf(1)
	}
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RegionsMatch compares two resolved region strings, case-insensitively.
// Empty or unknown regions never match anything.
func RegionsMatch(a, b string) bool {
	if a == "" || b == "" || a == RegionUnknown || b == RegionUnknown {
		return false
	}
	return strings.EqualFold(a, b)
}
