package airquality

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sejalthool/AQI/internal/geo"
	"github.com/sejalthool/AQI/internal/telemetry"
)

// DefaultSearchRadiusDeg is the half-size in degrees of the bounding box
// searched around a query point.
const DefaultSearchRadiusDeg = 0.15

// Provider defines the interface for air quality data providers.
type Provider interface {
	// FetchStationsInBounds fetches station summaries inside a bounding box.
	FetchStationsInBounds(ctx context.Context, box geo.Box) ([]*Station, error)

	// FetchStationFeed fetches the full current reading for one station.
	FetchStationFeed(ctx context.Context, uid int) (*Feed, error)
}

// ServiceConfig holds configuration for the air quality service.
type ServiceConfig struct {
	// Provider is the air quality data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// SearchRadiusDeg is the half-size in degrees of the bounding box
	// searched around a query point (default: DefaultSearchRadiusDeg).
	SearchRadiusDeg float64

	// StationLimit is how many stations feed a snapshot (default: 3).
	StationLimit int

	// FeedCacheTTL is how long fetched station feeds are reused across
	// lookups (default: 60s). Repeated searches around the same area hit
	// the cache instead of the provider.
	FeedCacheTTL time.Duration

	// Metrics records feed cache hits and misses. Nil disables recording.
	Metrics *telemetry.ProviderMetrics
}

// Service assembles per-location air quality snapshots.
type Service struct {
	provider     Provider
	logger       zerolog.Logger
	radiusDeg    float64
	stationLimit int
	feedCache    *cache.Cache
	metrics      *telemetry.ProviderMetrics
}

// Snapshot is everything the dashboard shows for one location: the
// composite reading, its health band, and the forecast series when the
// closest station provides one.
type Snapshot struct {
	Coordinate geo.Coordinate
	CityName   string
	Reading    *CompositeReading
	Category   Category

	// Forecast is nil when the closest station has no usable forecast.
	Forecast *ForecastSeries
}

// NewService creates a new air quality service.
func NewService(cfg ServiceConfig) *Service {
	radiusDeg := cfg.SearchRadiusDeg
	if radiusDeg <= 0 {
		radiusDeg = DefaultSearchRadiusDeg
	}

	stationLimit := cfg.StationLimit
	if stationLimit <= 0 {
		stationLimit = DefaultStationLimit
	}

	feedCacheTTL := cfg.FeedCacheTTL
	if feedCacheTTL == 0 {
		feedCacheTTL = 60 * time.Second
	}

	return &Service{
		provider:     cfg.Provider,
		logger:       cfg.Logger,
		radiusDeg:    radiusDeg,
		stationLimit: stationLimit,
		feedCache:    cache.New(feedCacheTTL, 10*time.Minute),
		metrics:      cfg.Metrics,
	}
}

// GetSnapshot builds the air quality snapshot for a location: stations in
// the surrounding box are ranked by distance, the closest few are fetched
// in parallel, and their readings are merged into one composite view.
//
// The feed fan-out is all-or-nothing: if any station fetch fails the whole
// snapshot fails, never a partial aggregation. Forecast data is the one
// exception; its absence only drops the Forecast field.
func (s *Service) GetSnapshot(ctx context.Context, origin geo.Coordinate) (*Snapshot, error) {
	box := geo.BoxAround(origin, s.radiusDeg)

	candidates, err := s.provider.FetchStationsInBounds(ctx, box)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", origin.Lat).
			Float64("lon", origin.Lon).
			Msg("station bounds lookup failed")
		return nil, ErrProviderUnavailable
	}

	if len(candidates) == 0 {
		return nil, ErrNoStationsNearby
	}

	ranked := SelectNearest(origin, candidates, s.stationLimit)

	feeds, err := s.fetchFeeds(ctx, ranked)
	if err != nil {
		s.logger.Error().Err(err).Msg("station feed fetch failed")
		return nil, ErrProviderUnavailable
	}

	reading := Aggregate(feeds, ranked)

	// The forecast rides along on the closest station's feed. Having none
	// is not an error; the chart section is simply absent.
	forecast := FormatForecast(feeds[0].Forecast)
	if forecast == nil {
		s.logger.Debug().Int("station_uid", ranked[0].UID).Msg("closest station has no forecast")
	}

	return &Snapshot{
		Coordinate: origin,
		CityName:   feeds[0].CityName,
		Reading:    reading,
		Category:   Classify(reading.AQI),
		Forecast:   forecast,
	}, nil
}

// NearbyStations returns every station in the search box around origin,
// ranked by distance with DistanceKm attached. No detail feeds are fetched;
// this backs map markers. An empty result means no stations in the box.
func (s *Service) NearbyStations(ctx context.Context, origin geo.Coordinate) ([]*Station, error) {
	box := geo.BoxAround(origin, s.radiusDeg)

	candidates, err := s.provider.FetchStationsInBounds(ctx, box)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", origin.Lat).
			Float64("lon", origin.Lon).
			Msg("station bounds lookup failed")
		return nil, ErrProviderUnavailable
	}

	return SelectNearest(origin, candidates, len(candidates)), nil
}

// CacheStats reports feed cache occupancy.
type CacheStats struct {
	FeedItems int
}

// CacheStats returns the current feed cache occupancy.
func (s *Service) CacheStats() CacheStats {
	return CacheStats{FeedItems: s.feedCache.ItemCount()}
}

// fetchFeeds retrieves feeds for the ranked stations concurrently. One
// failed fetch fails the whole join.
func (s *Service) fetchFeeds(ctx context.Context, ranked []*Station) ([]*Feed, error) {
	feeds := make([]*Feed, len(ranked))

	g, ctx := errgroup.WithContext(ctx)
	for i, station := range ranked {
		g.Go(func() error {
			feed, err := s.stationFeed(ctx, station.UID)
			if err != nil {
				return fmt.Errorf("station %d: %w", station.UID, err)
			}
			feeds[i] = feed
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return feeds, nil
}

// stationFeed returns a recently cached feed or fetches a fresh one.
func (s *Service) stationFeed(ctx context.Context, uid int) (*Feed, error) {
	key := strconv.Itoa(uid)
	if cached, ok := s.feedCache.Get(key); ok {
		s.metrics.RecordCacheHit("feed")
		return cached.(*Feed), nil
	}
	s.metrics.RecordCacheMiss("feed")

	feed, err := s.provider.FetchStationFeed(ctx, uid)
	if err != nil {
		return nil, err
	}

	s.feedCache.Set(key, feed, cache.DefaultExpiration)
	return feed, nil
}
