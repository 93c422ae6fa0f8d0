// Package cluster — scoring contains the composite pair score used to match
// complementary jobs into round trips.
package cluster

import (
	"math"
	"strings"
	"time"

	"drover/internal/config"
	"drover/internal/modules/location"
)

const isoDate = "2006-01-02"

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(isoDate, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// datePenalty is the absolute day difference between the first job's delivery
// date and the second job's collection date. A missing date costs a fixed
// uncertainty penalty: worse than a 0-1 day match, better than a multi-day
// mismatch.
func datePenalty(deliveryDate, collectionDate string, cfg config.DispatchConfig) int {
	d, okD := parseDate(deliveryDate)
	c, okC := parseDate(collectionDate)
	if !okD || !okC {
		return cfg.MissingDatePenalty
	}
	days := int(math.Abs(c.Sub(d).Hours() / 24))
	return days
}

// distanceComponent caps the distance contribution so far-apart candidates
// stay on the same scale as the date penalty.
func distanceComponent(miles float64, cfg config.DispatchConfig) int {
	if math.IsInf(miles, 1) {
		return cfg.DistanceCapMiles
	}
	d := int(math.Round(miles))
	if d > cfg.DistanceCapMiles {
		return cfg.DistanceCapMiles
	}
	return d
}

// pairScore scores job a's delivery leg against job b's collection leg.
// Lower is better.
func pairScore(a, b jobGeo, aDeliveryDate, bCollectionDate string, cfg config.DispatchConfig) int {
	score := datePenalty(aDeliveryDate, bCollectionDate, cfg)
	score += distanceComponent(location.DistanceMiles(a.delCoord, b.collCoord), cfg)
	if a.delOutward != "" && strings.EqualFold(a.delOutward, b.collOutward) {
		score -= cfg.OutwardBonus
	}
	if location.RegionsMatch(a.delRegion, b.collRegion) {
		score -= cfg.RegionBonus
	}
	return score
}
