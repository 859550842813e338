package waqi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sejalthool/AQI/internal/airquality"
	"github.com/sejalthool/AQI/internal/airquality/waqi"
	"github.com/sejalthool/AQI/internal/geo"
)

func TestClient_FetchStationsInBounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/map/bounds/", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		assert.Contains(t, r.URL.Query().Get("latlng"), "51.85")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"data": [
				{
					"uid": 6332,
					"lat": 52.358,
					"lon": 4.899,
					"aqi": "42",
					"station": {"name": "Amsterdam-Vondelpark", "time": "2026-08-25T14:00:00+02:00"}
				},
				{
					"uid": 6341,
					"lat": 52.389,
					"lon": 4.887,
					"aqi": "-",
					"station": {"name": "Amsterdam-Westerpark", "time": "2026-08-25T14:00:00+02:00"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: http.DefaultClient,
	})

	box := geo.BoxAround(geo.Coordinate{Lat: 52.0, Lon: 4.0}, 0.15)
	stations, err := client.FetchStationsInBounds(context.Background(), box)
	require.NoError(t, err)
	require.Len(t, stations, 2)

	assert.Equal(t, 6332, stations[0].UID)
	assert.Equal(t, "Amsterdam-Vondelpark", stations[0].Name)
	assert.Equal(t, 52.358, stations[0].Coordinate.Lat)
	assert.Equal(t, 4.899, stations[0].Coordinate.Lon)
	assert.Equal(t, 42, stations[0].AQI)
	assert.True(t, stations[0].HasAQI)

	// "-" means the station has no current reading
	assert.Equal(t, 6341, stations[1].UID)
	assert.False(t, stations[1].HasAQI)
}

func TestClient_FetchStationsInBounds_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "error", "data": "Invalid key"}`))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		BaseURL:    server.URL,
		Token:      "bad-token",
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchStationsInBounds(context.Background(), geo.Box{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestClient_FetchStationsInBounds_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: http.DefaultClient,
	})

	_, err := client.FetchStationsInBounds(context.Background(), geo.Box{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_FetchStationFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed/@6332/", r.URL.Path)
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"data": {
				"aqi": 58,
				"city": {"name": "Amsterdam-Vondelpark, Netherlands", "geo": [52.358, 4.899]},
				"iaqi": {
					"pm25": {"v": 58},
					"pm10": {"v": 21},
					"o3": {"v": 30.4},
					"t": {"v": 18.5},
					"h": {"v": 72}
				},
				"time": {"iso": "2026-08-25T14:00:00+02:00"},
				"forecast": {
					"daily": {
						"pm25": [
							{"avg": 55, "day": "2026-08-25", "max": 70, "min": 40},
							{"avg": 48, "day": "2026-08-26", "max": 60, "min": 35}
						],
						"o3": [
							{"avg": 25, "day": "2026-08-25", "max": 32, "min": 18}
						],
						"uvi": [
							{"avg": 3, "day": "2026-08-25", "max": 5, "min": 1}
						]
					}
				}
			}
		}`))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: http.DefaultClient,
	})

	feed, err := client.FetchStationFeed(context.Background(), 6332)
	require.NoError(t, err)

	assert.Equal(t, 6332, feed.StationUID)
	assert.Equal(t, "Amsterdam-Vondelpark, Netherlands", feed.CityName)
	assert.Equal(t, 58, feed.AQI)
	assert.True(t, feed.HasAQI)

	// Only pollutant series survive conversion; t and h are meteorological.
	require.Len(t, feed.Readings, 3)
	assert.Equal(t, 58.0, feed.Readings[airquality.PollutantPM25])
	assert.Equal(t, 21.0, feed.Readings[airquality.PollutantPM10])
	assert.Equal(t, 30.4, feed.Readings[airquality.PollutantO3])

	expectedTime, err := time.Parse(time.RFC3339, "2026-08-25T14:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, feed.ObservedAt.Equal(expectedTime))

	require.NotNil(t, feed.Forecast)
	require.Len(t, feed.Forecast.Daily, 2)
	pm25Days := feed.Forecast.Daily[airquality.PollutantPM25]
	require.Len(t, pm25Days, 2)
	assert.Equal(t, "2026-08-25", pm25Days[0].Date)
	assert.Equal(t, 55.0, pm25Days[0].Avg)
	assert.Equal(t, "2026-08-26", pm25Days[1].Date)
	require.Len(t, feed.Forecast.Daily[airquality.PollutantO3], 1)
}

func TestClient_FetchStationFeed_NoCurrentReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"data": {
				"aqi": "-",
				"city": {"name": "Quiet Station"},
				"iaqi": {},
				"time": {"iso": "2026-08-25T14:00:00+02:00"}
			}
		}`))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: http.DefaultClient,
	})

	feed, err := client.FetchStationFeed(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, feed.HasAQI)
	assert.Empty(t, feed.Readings)
	assert.Nil(t, feed.Forecast)
}

func TestClient_FetchStationFeed_ForecastWithoutPollutants(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"data": {
				"aqi": 17,
				"city": {"name": "Sunny Station"},
				"iaqi": {"o3": {"v": 17}},
				"time": {"iso": "2026-08-25T14:00:00+02:00"},
				"forecast": {
					"daily": {
						"uvi": [{"avg": 3, "day": "2026-08-25", "max": 5, "min": 1}]
					}
				}
			}
		}`))
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: http.DefaultClient,
	})

	feed, err := client.FetchStationFeed(context.Background(), 17)
	require.NoError(t, err)
	assert.Nil(t, feed.Forecast)
}

func TestClient_FetchStationFeed_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := waqi.NewClient(waqi.ClientConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		HTTPClient: http.DefaultClient,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchStationFeed(ctx, 6332)
	require.Error(t, err)
}
