// Package airquality implements the station-selection and reading-aggregation
// pipeline: ranking monitoring stations around a point, merging their readings
// into a composite view, and shaping forecast data for charting.
package airquality

import (
	"errors"
	"time"

	"github.com/sejalthool/AQI/internal/geo"
)

// Pipeline errors.
var (
	ErrNoStationsNearby    = errors.New("no monitoring stations nearby")
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
)

// Pollutant identifies a measured airborne substance.
type Pollutant string

const (
	PollutantPM25 Pollutant = "pm25"
	PollutantPM10 Pollutant = "pm10"
	PollutantO3   Pollutant = "o3"
	PollutantNO2  Pollutant = "no2"
	PollutantSO2  Pollutant = "so2"
	PollutantCO   Pollutant = "co"
)

// Pollutants lists every recognized pollutant code in display order.
var Pollutants = []Pollutant{
	PollutantPM25,
	PollutantPM10,
	PollutantO3,
	PollutantNO2,
	PollutantSO2,
	PollutantCO,
}

// Readings maps pollutant codes to measured concentrations. A pollutant a
// station does not report is absent from the map; a zero value is a real
// reading of zero, never a stand-in for missing data.
type Readings map[Pollutant]float64

// Station is a monitoring station summary from the area map.
type Station struct {
	// UID is the provider's numeric station identifier.
	UID int

	// Name is the station's display name.
	Name string

	// Coordinate is the station's position.
	Coordinate geo.Coordinate

	// AQI is the current overall index reported with the summary.
	// HasAQI is false for stations without a current reading.
	AQI    int
	HasAQI bool

	// DistanceKm is the distance from the query point, attached during
	// ranking. Zero until the station has been ranked.
	DistanceKm float64
}

// Feed is one station's full current reading.
type Feed struct {
	StationUID int
	CityName   string
	AQI        int
	HasAQI     bool
	Readings   Readings
	ObservedAt time.Time
	Forecast   *Forecast
}

// Forecast holds per-pollutant daily forecast points exactly as the
// provider supplied them, day order preserved.
type Forecast struct {
	Daily map[Pollutant][]ForecastPoint
}

// ForecastPoint is one day's forecast for a single pollutant.
type ForecastPoint struct {
	Date string
	Avg  float64
	Min  float64
	Max  float64
}

// CompositeReading merges the selected stations' readings into one view.
// A new location selection rebuilds it wholesale; it is never mutated.
type CompositeReading struct {
	// AQI is the unweighted arithmetic mean of the contributing stations'
	// indexes, rounded to the nearest integer.
	AQI int

	// Pollutants holds the per-pollutant mean over only the stations that
	// reported each pollutant.
	Pollutants Readings

	// ObservedAt is the reading timestamp of the closest station.
	ObservedAt time.Time

	// ContributingStations lists the merged stations in distance order.
	ContributingStations []StationContribution
}

// StationContribution describes one station's part in a composite reading.
// AQI is the station's own index, not the averaged one.
type StationContribution struct {
	Name       string
	AQI        int
	DistanceKm float64
}
