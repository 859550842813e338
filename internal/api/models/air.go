package models

// AirQualitySnapshot is the composite air quality view for one location.
type AirQualitySnapshot struct {
	Location   Point              `json:"location"`
	CityName   string             `json:"cityName,omitempty"`
	AQI        int                `json:"aqi"`
	Category   Category           `json:"category"`
	Pollutants map[string]float64 `json:"pollutants"`
	ObservedAt Timestamp          `json:"observedAt"`
	Stations   []StationReading   `json:"stations"`

	// Forecast is omitted entirely when the closest station has no
	// usable forecast, never serialized as null.
	Forecast *Forecast `json:"forecast,omitempty"`
}

// Category describes the health band an AQI value falls in.
type Category struct {
	Level    string `json:"level"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Advisory string `json:"advisory"`
}

// StationReading is one station's contribution to a composite snapshot.
// AQI is the station's own index, not the averaged one.
type StationReading struct {
	Name       string  `json:"name"`
	AQI        int     `json:"aqi"`
	DistanceKm float64 `json:"distanceKm"`
}

// Forecast is a chart-ready set of daily pollutant series sharing one
// date axis.
type Forecast struct {
	Dates  []string         `json:"dates"`
	Series []ForecastSeries `json:"series"`
}

// ForecastSeries is one charted pollutant's daily average values.
type ForecastSeries struct {
	Pollutant string    `json:"pollutant"`
	Values    []float64 `json:"values"`
}

// NearbyStation is a ranked monitoring station near a query point.
// AQI is omitted for stations without a current reading.
type NearbyStation struct {
	UID        int     `json:"uid"`
	Name       string  `json:"name"`
	Point      Point   `json:"point"`
	AQI        *int    `json:"aqi,omitempty"`
	DistanceKm float64 `json:"distanceKm"`
}

// StationList is the response body for the nearby stations endpoint.
type StationList struct {
	Stations []NearbyStation `json:"stations"`
}
