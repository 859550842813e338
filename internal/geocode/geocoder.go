// Package geocode resolves free-text location queries to coordinates
// using the OpenStreetMap Nominatim search service.
package geocode

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/muesli/gominatim"
	"github.com/rs/zerolog"

	"github.com/sejalthool/AQI/internal/geo"
)

const (
	// DefaultServerURL is the public Nominatim endpoint.
	DefaultServerURL = "https://nominatim.openstreetmap.org/"

	// MaxResults caps how many candidates a search returns.
	MaxResults = 5
)

// Kind discriminates selectable places from informational placeholders.
type Kind string

const (
	// KindPlace marks a selectable geocoding match.
	KindPlace Kind = "place"

	// KindNoMatch marks the placeholder for a search that ran and found nothing.
	KindNoMatch Kind = "no_match"

	// KindUnavailable marks the placeholder for a failed lookup.
	KindUnavailable Kind = "unavailable"
)

// Placeholder labels shown in place of selectable results.
const (
	noMatchLabel     = "no locations found"
	unavailableLabel = "error loading locations"
)

// Result is a single geocoding candidate.
// Placeholder results carry a zero Coordinate and are never selectable.
type Result struct {
	Coordinate  geo.Coordinate
	DisplayName string
	Kind        Kind
}

// Selectable reports whether the result points at a real place.
func (r Result) Selectable() bool {
	return r.Kind == KindPlace
}

// Config holds configuration for the Geocoder.
type Config struct {
	// ServerURL is the Nominatim server (defaults to DefaultServerURL).
	ServerURL string

	// Logger for lookup failures.
	Logger zerolog.Logger
}

// Geocoder resolves location queries against a Nominatim server.
//
// The underlying gominatim client holds the server URL in package state,
// so construct one Geocoder per process.
type Geocoder struct {
	logger zerolog.Logger
}

// New creates a Geocoder and points gominatim at the configured server.
func New(cfg Config) *Geocoder {
	server := cfg.ServerURL
	if server == "" {
		server = DefaultServerURL
	}
	gominatim.SetServer(server)

	return &Geocoder{logger: cfg.Logger}
}

// Search resolves a free-text query to at most MaxResults candidates,
// preserving the order Nominatim returned them in.
//
// An empty or whitespace-only query returns an empty slice without touching
// the network. A search that ran but matched nothing returns a single
// KindNoMatch placeholder. A failed or unparsable lookup returns a single
// KindUnavailable placeholder; the error is logged, never returned, so
// callers always have something to display.
func (g *Geocoder) Search(ctx context.Context, query string) []Result {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []Result{}
	}

	if err := ctx.Err(); err != nil {
		g.logger.Debug().Err(err).Str("query", trimmed).Msg("geocode search canceled")
		return []Result{{DisplayName: unavailableLabel, Kind: KindUnavailable}}
	}

	searchQuery := gominatim.SearchQuery{
		Q: url.QueryEscape(trimmed),
	}

	matches, err := searchQuery.Get()
	if err != nil {
		g.logger.Warn().Err(err).Str("query", trimmed).Msg("geocode lookup failed")
		return []Result{{DisplayName: unavailableLabel, Kind: KindUnavailable}}
	}

	results := make([]Result, 0, MaxResults)
	for _, m := range matches {
		if len(results) == MaxResults {
			break
		}

		lat, err := strconv.ParseFloat(m.Lat, 64)
		if err != nil {
			g.logger.Debug().Str("lat", m.Lat).Msg("skipping result with unparsable latitude")
			continue
		}
		lon, err := strconv.ParseFloat(m.Lon, 64)
		if err != nil {
			g.logger.Debug().Str("lon", m.Lon).Msg("skipping result with unparsable longitude")
			continue
		}

		coord := geo.Coordinate{Lat: lat, Lon: lon}
		if !coord.Valid() {
			g.logger.Debug().Float64("lat", lat).Float64("lon", lon).Msg("skipping result with out-of-range coordinate")
			continue
		}

		results = append(results, Result{
			Coordinate:  coord,
			DisplayName: m.DisplayName,
			Kind:        KindPlace,
		})
	}

	if len(results) == 0 {
		return []Result{{DisplayName: noMatchLabel, Kind: KindNoMatch}}
	}

	return results
}
