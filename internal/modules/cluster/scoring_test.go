package cluster

import (
	"math"
	"testing"

	"drover/internal/config"
	"drover/internal/types"
)

func TestDatePenalty(t *testing.T) {
	cfg := config.DefaultDispatchConfig()
	cases := []struct {
		name       string
		delivery   string
		collection string
		want       int
	}{
		{"same day", "2025-09-10", "2025-09-10", 0},
		{"one day apart", "2025-09-10", "2025-09-11", 1},
		{"reversed order still absolute", "2025-09-11", "2025-09-10", 1},
		{"a week apart", "2025-09-10", "2025-09-17", 7},
		{"missing delivery date", "", "2025-09-10", cfg.MissingDatePenalty},
		{"missing collection date", "2025-09-10", "", cfg.MissingDatePenalty},
		{"unparseable date", "10/09/2025", "2025-09-10", cfg.MissingDatePenalty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := datePenalty(tc.delivery, tc.collection, cfg); got != tc.want {
				t.Errorf("datePenalty(%q, %q) = %d, want %d", tc.delivery, tc.collection, got, tc.want)
			}
		})
	}
}

func TestDistanceComponent(t *testing.T) {
	cfg := config.DefaultDispatchConfig()
	cases := []struct {
		miles float64
		want  int
	}{
		{0, 0},
		{3.4, 3},
		{3.6, 4},
		{19.9, 20},
		{250, cfg.DistanceCapMiles},
	}
	for _, tc := range cases {
		if got := distanceComponent(tc.miles, cfg); got != tc.want {
			t.Errorf("distanceComponent(%f) = %d, want %d", tc.miles, got, tc.want)
		}
	}

	inf := distanceComponent(math.Inf(1), cfg)
	if inf != cfg.DistanceCapMiles {
		t.Errorf("distanceComponent(+Inf) = %d, want %d", inf, cfg.DistanceCapMiles)
	}
}

func TestPairScore_Bonuses(t *testing.T) {
	cfg := config.DefaultDispatchConfig()
	coord := types.Coord{Lat: 51.5558, Lng: -1.7797}

	a := jobGeo{delOutward: "SN1", delRegion: "Swindon", delCoord: &coord}
	b := jobGeo{collOutward: "SN1", collRegion: "Swindon", collCoord: &coord}

	got := pairScore(a, b, "2025-09-10", "2025-09-10", cfg)
	want := -cfg.OutwardBonus - cfg.RegionBonus
	if got != want {
		t.Errorf("pairScore(complementary) = %d, want %d", got, want)
	}

	// Region bonus alone when the outward codes differ.
	b2 := jobGeo{collOutward: "SN2", collRegion: "Swindon", collCoord: &coord}
	got = pairScore(a, b2, "2025-09-10", "2025-09-10", cfg)
	if want := -cfg.RegionBonus; got != want {
		t.Errorf("pairScore(region only) = %d, want %d", got, want)
	}

	// Empty outward code never earns the bonus.
	a3 := jobGeo{delRegion: "Swindon", delCoord: &coord}
	b3 := jobGeo{collRegion: "Swindon", collCoord: &coord}
	got = pairScore(a3, b3, "2025-09-10", "2025-09-10", cfg)
	if want := -cfg.RegionBonus; got != want {
		t.Errorf("pairScore(blank outwards) = %d, want %d", got, want)
	}
}

func TestPairScore_UnresolvableCostsCap(t *testing.T) {
	cfg := config.DefaultDispatchConfig()
	a := jobGeo{delOutward: "ZZ1"}
	b := jobGeo{collOutward: "ZZ9"}
	got := pairScore(a, b, "2025-09-10", "2025-09-10", cfg)
	if got != cfg.DistanceCapMiles {
		t.Errorf("pairScore(no coords) = %d, want %d", got, cfg.DistanceCapMiles)
	}
}
