package mapbox

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

const defaultBaseURL = "https://api.mapbox.com"

// MapboxClient handles communication with Mapbox APIs
type MapboxClient struct {
	APIKey  string // IMPORTANT: Handle your API Key securely! Load from environment variable.
	BaseURL string
	Country string // ISO 3166 alpha-2 filter, e.g. "br"
	Client  *http.Client
}

// NewMapboxClient creates a new Mapbox client instance
func NewMapboxClient(apiKey string) *MapboxClient {
	if apiKey == "" {
		log.Println("Warning: Mapbox API Key is empty.")
	}
	return &MapboxClient{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Country: "br",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Geocoding v6 Structures ---

// GeocodeResponse is the FeatureCollection returned by the forward geocoding endpoint
type GeocodeResponse struct {
	Type     string    `json:"type"` // "FeatureCollection"
	Features []Feature `json:"features"`
}

// Feature is one candidate match
type Feature struct {
	Type       string            `json:"type"`
	Geometry   Point             `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// Point contains the feature coordinates
type Point struct {
	Type        string    `json:"type"`        // "Point"
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
}

// FeatureProperties carries the descriptive fields of a feature
type FeatureProperties struct {
	MapboxID       string `json:"mapbox_id"`
	FeatureType    string `json:"feature_type"` // "address", "street", "place", etc.
	Name           string `json:"name"`
	FullAddress    string `json:"full_address"`
	PlaceFormatted string `json:"place_formatted"`
}

// Geocode resolves a free-text address with the Geocoding v6 forward endpoint.
func (mc *MapboxClient) Geocode(ctx context.Context, address string) (model.ResolvedLocation, error) {
	if mc.APIKey == "" {
		return model.ResolvedLocation{}, fmt.Errorf("mapbox API key is not set")
	}
	if address == "" {
		return model.ResolvedLocation{}, errors.Wrap(geocode.ErrNotFound, "address cannot be empty")
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("access_token", mc.APIKey)
	params.Set("limit", "1")
	if mc.Country != "" {
		params.Set("country", mc.Country)
	}

	fullURL := fmt.Sprintf("%s/search/geocode/v6/forward?%s", mc.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to create Mapbox Geocoding request: %w", err)
	}

	resp, err := mc.Client.Do(req)
	if err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to execute Mapbox Geocoding request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to read Mapbox Geocoding response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Mapbox Geocoding request failed with status %d: %s\n", resp.StatusCode, string(bodyBytes))
		return model.ResolvedLocation{}, fmt.Errorf("mapbox geocoding error: status code %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var geoResp GeocodeResponse
	if err := json.Unmarshal(bodyBytes, &geoResp); err != nil {
		return model.ResolvedLocation{}, fmt.Errorf("failed to decode Mapbox Geocoding response: %w", err)
	}

	for _, f := range geoResp.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		label := f.Properties.FullAddress
		if label == "" {
			label = f.Properties.Name
		}
		return model.ResolvedLocation{
			Latitude:         f.Geometry.Coordinates[1],
			Longitude:        f.Geometry.Coordinates[0],
			CanonicalAddress: label,
		}, nil
	}
	return model.ResolvedLocation{}, errors.Wrapf(geocode.ErrNotFound, "mapbox: no features for %q", address)
}
