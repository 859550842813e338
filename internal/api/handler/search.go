package handler

import (
	"context"
	"net/http"

	"github.com/sejalthool/AQI/internal/api/models"
	"github.com/sejalthool/AQI/internal/api/response"
	"github.com/sejalthool/AQI/internal/geocode"
)

// LocationSearcher resolves free-text location queries.
type LocationSearcher interface {
	Search(ctx context.Context, query string) []geocode.Result
}

// SearchHandler handles location search endpoints.
type SearchHandler struct {
	geocoder LocationSearcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(geocoder LocationSearcher) *SearchHandler {
	return &SearchHandler{geocoder: geocoder}
}

// Search handles GET /v1/locations/search - free-text location search.
// A missing or empty q parameter yields an empty result list, not an error.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results := h.geocoder.Search(r.Context(), query)

	out := make([]models.LocationResult, 0, len(results))
	for _, res := range results {
		m := models.LocationResult{
			DisplayName: res.DisplayName,
			Kind:        string(res.Kind),
			Selectable:  res.Selectable(),
		}
		if res.Selectable() {
			m.Point = &models.Point{Lat: res.Coordinate.Lat, Lon: res.Coordinate.Lon}
		}
		out = append(out, m)
	}

	response.JSON(w, r, http.StatusOK, models.LocationSearchResponse{Results: out})
}
