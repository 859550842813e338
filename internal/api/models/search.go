package models

// LocationResult is one geocoding candidate. Placeholder rows describing
// an empty or failed search carry no point and are not selectable.
type LocationResult struct {
	DisplayName string `json:"displayName"`
	Point       *Point `json:"point,omitempty"`
	Kind        string `json:"kind"`
	Selectable  bool   `json:"selectable"`
}

// LocationSearchResponse is the response body for the location search
// endpoint.
type LocationSearchResponse struct {
	Results []LocationResult `json:"results"`
}
