package airquality

import (
	"sort"

	"github.com/sejalthool/AQI/internal/geo"
)

// DefaultStationLimit is how many stations a selection keeps.
const DefaultStationLimit = 3

// SelectNearest ranks candidates by distance from origin and returns at most
// limit of them, closest first, with DistanceKm attached. The sort is stable,
// so candidates at equal distance keep their input order. The input slice is
// not modified; ranked stations are fresh copies.
//
// An empty candidate list yields an empty result. Surfacing that as a
// "no stations found" condition is the caller's job.
func SelectNearest(origin geo.Coordinate, candidates []*Station, limit int) []*Station {
	if limit <= 0 {
		limit = DefaultStationLimit
	}

	ranked := make([]*Station, len(candidates))
	for i, s := range candidates {
		station := *s
		station.DistanceKm = geo.DistanceKm(origin, s.Coordinate)
		ranked[i] = &station
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].DistanceKm < ranked[b].DistanceKm
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
