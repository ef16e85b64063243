package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/geocode"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/pkg/errors"
)

const defaultBaseURL = "https://maps.googleapis.com"

// GoogleMapsClient handles communication with Google Maps APIs
type GoogleMapsClient struct {
	APIKey  string // IMPORTANT: Handle your API Key securely! Do not hardcode.
	BaseURL string
	Region  string // ccTLD region bias, e.g. "br"
	Client  *http.Client
}

// NewGoogleMapsClient creates a new client instance
// apiKey should be loaded securely (e.g., from environment variable)
func NewGoogleMapsClient(apiKey string) *GoogleMapsClient {
	if apiKey == "" {
		log.Println("Warning: Google Maps API Key is empty.")
	}
	return &GoogleMapsClient{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Region:  "br",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Geocoding Structures ---

// GeocodeResponse represents the top-level response for a Geocoding request
type GeocodeResponse struct {
	Results      []GeocodeResult `json:"results"`
	Status       string          `json:"status"` // e.g., "OK", "ZERO_RESULTS", "OVER_QUERY_LIMIT", "REQUEST_DENIED", "INVALID_REQUEST", "UNKNOWN_ERROR"
	ErrorMessage string          `json:"error_message,omitempty"`
}

// GeocodeResult is a single candidate match
type GeocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
	PlaceID          string   `json:"place_id"`
	PartialMatch     bool     `json:"partial_match,omitempty"`
	Types            []string `json:"types"`
}

// Geometry contains location information
type Geometry struct {
	Location     LatLng `json:"location"`
	LocationType string `json:"location_type"` // "ROOFTOP", "RANGE_INTERPOLATED", "GEOMETRIC_CENTER", "APPROXIMATE"
	Viewport     Bounds `json:"viewport"`
}

// LatLng represents latitude and longitude
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds represents a viewport bounding box
type Bounds struct {
	NorthEast LatLng `json:"northeast"`
	SouthWest LatLng `json:"southwest"`
}

// --- Client Methods ---

// Geocode resolves a free-text address with the Geocoding API and returns the first result.
func (gc *GoogleMapsClient) Geocode(ctx context.Context, address string) (model.ResolvedLocation, error) {
	if gc.APIKey == "" {
		return model.ResolvedLocation{}, fmt.Errorf("google maps API key is not set")
	}
	if address == "" {
		return model.ResolvedLocation{}, errors.Wrap(geocode.ErrNotFound, "address cannot be empty")
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", gc.APIKey)
	if gc.Region != "" {
		params.Set("region", gc.Region)
	}

	fullURL := fmt.Sprintf("%s/maps/api/geocode/json?%s", gc.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to create Geocoding request: %w", err)
	}

	resp, err := gc.Client.Do(req)
	if err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to execute Geocoding request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to read Geocoding response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return model.ResolvedLocation{}, fmt.Errorf("google maps error: status code %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var geocodeResponse GeocodeResponse
	if err := json.Unmarshal(bodyBytes, &geocodeResponse); err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to decode Geocoding response: %w", err)
	}

	switch geocodeResponse.Status {
	case "OK":
	case "ZERO_RESULTS":
		return model.ResolvedLocation{}, errors.Wrapf(geocode.ErrNotFound, "google: zero results for %q", address)
	default:
		return model.ResolvedLocation{}, fmt.Errorf("google maps API error: %s %s", geocodeResponse.Status, geocodeResponse.ErrorMessage)
	}

	if len(geocodeResponse.Results) == 0 {
		return model.ResolvedLocation{}, errors.Wrapf(geocode.ErrNotFound, "google: zero results for %q", address)
	}

	first := geocodeResponse.Results[0]
	return model.ResolvedLocation{
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
		CanonicalAddress: first.FormattedAddress,
	}, nil
}
