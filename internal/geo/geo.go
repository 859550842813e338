// Package geo provides coordinate types and great-circle distance math.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius in kilometers.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
// Coordinates are value types and never mutated after creation.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinate lies within [-90, 90] latitude
// and [-180, 180] longitude.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// DistanceKm returns the great-circle distance between a and b in kilometers
// using the haversine formula. The function is pure and symmetric.
func DistanceKm(a, b Coordinate) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Box is a latitude/longitude bounding box.
type Box struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// BoxAround returns the bounding box extending delta degrees in every
// direction from center. Values are not clamped to valid coordinate ranges;
// callers near the poles or antimeridian get the raw arithmetic box.
func BoxAround(center Coordinate, delta float64) Box {
	return Box{
		MinLat: center.Lat - delta,
		MinLon: center.Lon - delta,
		MaxLat: center.Lat + delta,
		MaxLon: center.Lon + delta,
	}
}
