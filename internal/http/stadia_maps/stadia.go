package stadiamaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bwise1/lifegroup_locator/internal/geocode"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
)

const (
	defaultStadiaBaseURL = "https://api.stadiamaps.com"
	searchEndpoint       = "/geocoding/v1/search"
)

// Client handles communication with the Stadia Maps API.
type Client struct {
	BaseURL    *url.URL
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new Stadia Maps API client with default timeout.
func NewClient(apiKey string) *Client {
	baseURL, _ := url.Parse(defaultStadiaBaseURL)
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// GeocodeQuery represents parameters for geocoding requests.
type GeocodeQuery struct {
	Text            string   `url:"text,omitempty"`
	Size            *int     `url:"size,omitempty"`
	Layers          []string `url:"layers,omitempty,comma"` // e.g., "address", "venue"
	BoundaryCountry string   `url:"boundary.country,omitempty"`
}

// GeoJSONFeatureCollection is the response structure for geocoding APIs.
type GeoJSONFeatureCollection struct {
	Type     string `json:"type"` // "FeatureCollection"
	Features []struct {
		Type     string `json:"type"` // "Feature"
		Geometry *struct {
			Type        string    `json:"type"`        // "Point"
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties map[string]interface{} `json:"properties"` // label, confidence, gid, etc.
	} `json:"features"`
}

// buildURL constructs the API URL with query parameters.
func (c *Client) buildURL(endpoint string, queryParams interface{}) (string, error) {
	rel, err := url.Parse(endpoint)
	if err != nil {
		return "", errors.Wrap(err, "parse endpoint")
	}
	u := c.BaseURL.ResolveReference(rel)

	q := u.Query()
	q.Set("api_key", c.APIKey)

	if queryParams != nil {
		v, err := query.Values(queryParams)
		if err != nil {
			return "", errors.Wrap(err, "encode query parameters")
		}
		for k, vals := range v {
			for _, val := range vals {
				q.Add(k, val)
			}
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search performs forward geocoding.
func (c *Client) Search(ctx context.Context, text string, params *GeocodeQuery) (*GeoJSONFeatureCollection, error) {
	if params == nil {
		params = &GeocodeQuery{}
	}
	params.Text = text

	reqURL, err := c.buildURL(searchEndpoint, params)
	if err != nil {
		return nil, errors.Wrap(err, "build search URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create search request")
	}

	var result GeoJSONFeatureCollection
	if err := c.do(req, &result); err != nil {
		return nil, errors.Wrap(err, "execute search request")
	}
	return &result, nil
}

// Geocode resolves text to the first feature returned by Search, restricted to Brazil.
func (c *Client) Geocode(ctx context.Context, text string) (model.ResolvedLocation, error) {
	size := 1
	results, err := c.Search(ctx, text, &GeocodeQuery{Size: &size, BoundaryCountry: "BR"})
	if err != nil {
		return model.ResolvedLocation{}, err
	}

	for _, feature := range results.Features {
		if feature.Geometry == nil || len(feature.Geometry.Coordinates) < 2 {
			continue
		}
		label, _ := feature.Properties["label"].(string)
		return model.ResolvedLocation{
			Latitude:         feature.Geometry.Coordinates[1],
			Longitude:        feature.Geometry.Coordinates[0],
			CanonicalAddress: label,
		}, nil
	}
	return model.ResolvedLocation{}, errors.Wrapf(geocode.ErrNotFound, "stadia: no features for %q", text)
}

// do executes HTTP requests and decodes JSON responses.
func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute HTTP request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}
