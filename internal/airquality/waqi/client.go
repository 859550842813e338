// Package waqi provides a client for the World Air Quality Index API.
package waqi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sejalthool/AQI/internal/airquality"
	"github.com/sejalthool/AQI/internal/geo"
	"github.com/sejalthool/AQI/internal/provider/resilience"
	"github.com/sejalthool/AQI/internal/telemetry"
)

const (
	// DefaultBaseURL is the base URL for the WAQI API.
	DefaultBaseURL = "https://api.waqi.info"

	// ProviderName identifies this provider.
	ProviderName = "waqi"
)

// ClientConfig holds configuration for the WAQI client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// Token is the API token sent with every request.
	Token string

	// HTTPClient is the HTTP client to use (must implement HTTPDoer).
	// If nil, a default resilient client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Metrics records request timings per operation. Nil disables recording.
	Metrics *telemetry.ProviderMetrics
}

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a WAQI API client.
type Client struct {
	baseURL    string
	token      string
	httpClient HTTPDoer
	metrics    *telemetry.ProviderMetrics
}

// NewClient creates a new WAQI client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Registry:        resilience.GlobalRegistry,
		})
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
	}
}

// API response types (from the WAQI API).

// envelope wraps every WAQI response. Data holds an object or array when
// Status is "ok" and an error message string when Status is "error".
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type boundsStation struct {
	UID     int        `json:"uid"`
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`
	AQI     flexNumber `json:"aqi"`
	Station boundsMeta `json:"station"`
}

type boundsMeta struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type feedData struct {
	AQI      flexNumber           `json:"aqi"`
	City     feedCity             `json:"city"`
	IAQI     map[string]feedValue `json:"iaqi"`
	Time     feedTime             `json:"time"`
	Forecast *feedForecast        `json:"forecast"`
}

type feedCity struct {
	Name string    `json:"name"`
	Geo  []float64 `json:"geo"`
}

type feedValue struct {
	V float64 `json:"v"`
}

type feedTime struct {
	ISO string `json:"iso"`
}

type feedForecast struct {
	Daily map[string][]feedForecastDay `json:"daily"`
}

type feedForecastDay struct {
	Avg float64 `json:"avg"`
	Day string  `json:"day"`
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// flexNumber decodes WAQI numeric fields that arrive either as JSON numbers
// or as strings, including "-" for stations without a current reading.
type flexNumber struct {
	value float64
	valid bool
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value = f
		n.valid = true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("value %s is neither number nor string", b)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Non-numeric strings such as "-" mean no reading.
		return nil
	}

	n.value = f
	n.valid = true
	return nil
}

// FetchStationsInBounds retrieves station summaries inside the bounding box.
func (c *Client) FetchStationsInBounds(ctx context.Context, box geo.Box) (stations []*airquality.Station, err error) {
	defer func(start time.Time) {
		c.metrics.RecordRequest("bounds", time.Since(start), err)
	}(time.Now())

	reqURL := fmt.Sprintf("%s/map/bounds/?token=%s&latlng=%f,%f,%f,%f",
		c.baseURL, url.QueryEscape(c.token), box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stations in bounds: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from bounds endpoint", resp.StatusCode)
	}

	var data []boundsStation
	if err := decodeEnvelope(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode bounds response: %w", err)
	}

	stations = make([]*airquality.Station, 0, len(data))
	for _, s := range data {
		stations = append(stations, toStation(&s))
	}

	return stations, nil
}

// FetchStationFeed retrieves the full current reading for one station.
func (c *Client) FetchStationFeed(ctx context.Context, uid int) (feed *airquality.Feed, err error) {
	defer func(start time.Time) {
		c.metrics.RecordRequest("feed", time.Since(start), err)
	}(time.Now())

	reqURL := fmt.Sprintf("%s/feed/@%d/?token=%s", c.baseURL, uid, url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch station feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from feed endpoint", resp.StatusCode)
	}

	var data feedData
	if err := decodeEnvelope(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("decode feed response: %w", err)
	}

	return toFeed(uid, &data), nil
}

// decodeEnvelope unwraps the WAQI status envelope and decodes the data
// section into v.
func decodeEnvelope(r io.Reader, v interface{}) error {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return err
	}

	if env.Status != "ok" {
		var msg string
		if err := json.Unmarshal(env.Data, &msg); err != nil || msg == "" {
			msg = env.Status
		}
		return fmt.Errorf("api error: %s", msg)
	}

	return json.Unmarshal(env.Data, v)
}

// toStation converts a bounds entry to a domain Station.
func toStation(s *boundsStation) *airquality.Station {
	return &airquality.Station{
		UID:        s.UID,
		Name:       s.Station.Name,
		Coordinate: geo.Coordinate{Lat: s.Lat, Lon: s.Lon},
		AQI:        int(s.AQI.value),
		HasAQI:     s.AQI.valid,
	}
}

// toFeed converts a feed payload to a domain Feed.
func toFeed(uid int, d *feedData) *airquality.Feed {
	readings := make(airquality.Readings, len(d.IAQI))
	for code, v := range d.IAQI {
		if p := toPollutant(code); p != "" {
			readings[p] = v.V
		}
	}

	observedAt, _ := time.Parse(time.RFC3339, d.Time.ISO)

	feed := &airquality.Feed{
		StationUID: uid,
		CityName:   d.City.Name,
		AQI:        int(d.AQI.value),
		HasAQI:     d.AQI.valid,
		Readings:   readings,
		ObservedAt: observedAt,
	}

	if d.Forecast != nil {
		feed.Forecast = toForecast(d.Forecast)
	}

	return feed
}

// toForecast converts the daily forecast block, keeping only recognized
// pollutant series. Returns nil when nothing recognizable remains.
func toForecast(f *feedForecast) *airquality.Forecast {
	daily := make(map[airquality.Pollutant][]airquality.ForecastPoint, len(f.Daily))
	for code, days := range f.Daily {
		p := toPollutant(code)
		if p == "" {
			// Skip non-pollutant series such as uvi.
			continue
		}

		points := make([]airquality.ForecastPoint, 0, len(days))
		for _, day := range days {
			points = append(points, airquality.ForecastPoint{
				Date: day.Day,
				Avg:  day.Avg,
				Min:  day.Min,
				Max:  day.Max,
			})
		}
		daily[p] = points
	}

	if len(daily) == 0 {
		return nil
	}

	return &airquality.Forecast{Daily: daily}
}

// toPollutant maps a WAQI series key to our Pollutant type. Non-pollutant
// keys (temperature, humidity, pressure, uvi) map to "".
func toPollutant(code string) airquality.Pollutant {
	switch strings.ToLower(code) {
	case "pm25":
		return airquality.PollutantPM25
	case "pm10":
		return airquality.PollutantPM10
	case "o3":
		return airquality.PollutantO3
	case "no2":
		return airquality.PollutantNO2
	case "so2":
		return airquality.PollutantSO2
	case "co":
		return airquality.PollutantCO
	default:
		return ""
	}
}
