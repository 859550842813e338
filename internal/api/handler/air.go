// Package handler provides HTTP handlers for the air quality API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/sejalthool/AQI/internal/airquality"
	"github.com/sejalthool/AQI/internal/api/models"
	"github.com/sejalthool/AQI/internal/api/response"
	"github.com/sejalthool/AQI/internal/geo"
)

var validate = validator.New()

// AirService assembles air quality snapshots and station listings.
type AirService interface {
	GetSnapshot(ctx context.Context, origin geo.Coordinate) (*airquality.Snapshot, error)
	NearbyStations(ctx context.Context, origin geo.Coordinate) ([]*airquality.Station, error)
	CacheStats() airquality.CacheStats
}

// AirHandler handles air quality endpoints.
type AirHandler struct {
	service AirService
}

// NewAirHandler creates a new AirHandler.
func NewAirHandler(service AirService) *AirHandler {
	return &AirHandler{service: service}
}

// Quality handles GET /v1/air/quality - the composite snapshot for a location.
func (h *AirHandler) Quality(w http.ResponseWriter, r *http.Request) {
	origin, fieldErrors := coordinateParams(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid coordinates", fieldErrors)
		return
	}

	snapshot, err := h.service.GetSnapshot(r.Context(), origin)
	if err != nil {
		writeAirError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toSnapshotModel(snapshot))
}

// Stations handles GET /v1/air/stations - ranked stations near a location.
func (h *AirHandler) Stations(w http.ResponseWriter, r *http.Request) {
	origin, fieldErrors := coordinateParams(r)
	if len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid coordinates", fieldErrors)
		return
	}

	stations, err := h.service.NearbyStations(r.Context(), origin)
	if err != nil {
		writeAirError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, toStationList(stations))
}

// writeAirError maps pipeline errors to problem responses.
func writeAirError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, airquality.ErrNoStationsNearby):
		response.NoStationsNearby(w, r, "no monitoring stations near this location")
	case errors.Is(err, airquality.ErrProviderUnavailable):
		response.UpstreamUnavailable(w, r, "air quality provider unavailable")
	default:
		response.InternalError(w, r, "failed to load air quality data")
	}
}

// coordinateParams parses and validates the lat and lon query parameters.
func coordinateParams(r *http.Request) (geo.Coordinate, []models.FieldError) {
	var fieldErrors []models.FieldError

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "lat", Message: "must be a decimal degree value", Code: "INVALID",
		})
	}

	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		fieldErrors = append(fieldErrors, models.FieldError{
			Field: "lon", Message: "must be a decimal degree value", Code: "INVALID",
		})
	}

	if len(fieldErrors) > 0 {
		return geo.Coordinate{}, fieldErrors
	}

	if err := validate.Struct(models.Point{Lat: lat, Lon: lon}); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			fieldErrors = append(fieldErrors, rangeError(fe.Field()))
		}
		return geo.Coordinate{}, fieldErrors
	}

	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}

// rangeError builds the out-of-range error for a Point field.
func rangeError(field string) models.FieldError {
	if field == "Lat" {
		return models.FieldError{
			Field: "lat", Message: "must be between -90 and 90", Code: "OUT_OF_RANGE",
		}
	}
	return models.FieldError{
		Field: "lon", Message: "must be between -180 and 180", Code: "OUT_OF_RANGE",
	}
}

func toSnapshotModel(s *airquality.Snapshot) models.AirQualitySnapshot {
	m := models.AirQualitySnapshot{
		Location: models.Point{Lat: s.Coordinate.Lat, Lon: s.Coordinate.Lon},
		CityName: s.CityName,
		AQI:      s.Reading.AQI,
		Category: models.Category{
			Level:    string(s.Category.Level),
			Label:    s.Category.Label,
			Color:    s.Category.ColorHex,
			Advisory: s.Category.Advisory,
		},
		Pollutants: pollutantMap(s.Reading.Pollutants),
		ObservedAt: models.Timestamp(s.Reading.ObservedAt),
		Stations:   stationReadings(s.Reading.ContributingStations),
	}
	if s.Forecast != nil {
		m.Forecast = toForecastModel(s.Forecast)
	}
	return m
}

func pollutantMap(readings airquality.Readings) map[string]float64 {
	out := make(map[string]float64, len(readings))
	for code, value := range readings {
		out[string(code)] = value
	}
	return out
}

func stationReadings(contributions []airquality.StationContribution) []models.StationReading {
	out := make([]models.StationReading, 0, len(contributions))
	for _, c := range contributions {
		out = append(out, models.StationReading{
			Name:       c.Name,
			AQI:        c.AQI,
			DistanceKm: c.DistanceKm,
		})
	}
	return out
}

func toForecastModel(f *airquality.ForecastSeries) *models.Forecast {
	series := make([]models.ForecastSeries, 0, len(f.Series))
	for _, s := range f.Series {
		series = append(series, models.ForecastSeries{Pollutant: s.Label, Values: s.Values})
	}
	return &models.Forecast{Dates: f.Dates, Series: series}
}

func toStationList(stations []*airquality.Station) models.StationList {
	out := make([]models.NearbyStation, 0, len(stations))
	for _, st := range stations {
		m := models.NearbyStation{
			UID:        st.UID,
			Name:       st.Name,
			Point:      models.Point{Lat: st.Coordinate.Lat, Lon: st.Coordinate.Lon},
			DistanceKm: st.DistanceKm,
		}
		if st.HasAQI {
			aqi := st.AQI
			m.AQI = &aqi
		}
		out = append(out, m)
	}
	return models.StationList{Stations: out}
}
