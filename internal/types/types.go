// README: Common value types shared across modules.
package types

// ID identifies a job or cluster.
type ID string

// Coord is a WGS84 point in decimal degrees.
type Coord struct {
	Lat float64
	Lng float64
}
