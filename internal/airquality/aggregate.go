package airquality

import "math"

// Aggregate merges ranked station feeds into a single CompositeReading.
// feeds and ranked are parallel slices in distance-ascending order:
// feeds[i] is the detail fetched for ranked[i].
//
// The composite index is the unweighted arithmetic mean of the station
// indexes, rounded to the nearest integer. Each pollutant is averaged over
// only the stations that reported it; a pollutant no station reported stays
// absent rather than becoming zero. ObservedAt is taken from the
// first-ranked station, the remaining timestamps are discarded.
//
// Returns nil when feeds is empty.
func Aggregate(feeds []*Feed, ranked []*Station) *CompositeReading {
	if len(feeds) == 0 {
		return nil
	}

	var aqiSum float64
	aqiCount := 0
	for _, f := range feeds {
		if f.HasAQI {
			aqiSum += float64(f.AQI)
			aqiCount++
		}
	}

	aqi := 0
	if aqiCount > 0 {
		aqi = int(math.Round(aqiSum / float64(aqiCount)))
	}

	pollutants := make(Readings)
	for _, p := range Pollutants {
		var sum float64
		count := 0
		for _, f := range feeds {
			if v, ok := f.Readings[p]; ok {
				sum += v
				count++
			}
		}
		if count > 0 {
			pollutants[p] = sum / float64(count)
		}
	}

	contributions := make([]StationContribution, 0, len(feeds))
	for i, f := range feeds {
		name := f.CityName
		distance := 0.0
		if i < len(ranked) {
			if ranked[i].Name != "" {
				name = ranked[i].Name
			}
			distance = ranked[i].DistanceKm
		}

		contributions = append(contributions, StationContribution{
			Name:       name,
			AQI:        f.AQI,
			DistanceKm: distance,
		})
	}

	return &CompositeReading{
		AQI:                  aqi,
		Pollutants:           pollutants,
		ObservedAt:           feeds[0].ObservedAt,
		ContributingStations: contributions,
	}
}
