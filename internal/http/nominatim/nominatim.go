package nominatim

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

	"github.com/bwise1/lifegroup_locator/internal/geocode"
	"github.com/bwise1/lifegroup_locator/internal/model"
	"github.com/google/go-querystring/query"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "lifegroup_locator/1.0" // Required by Nominatim ToS
)

// Client geocodes addresses against an OpenStreetMap Nominatim instance.
type Client struct {
	BaseURL    *url.URL
	UserAgent  string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client limited to one request per second, the public instance's usage policy.
func NewClient(baseURL, userAgent string) (*Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse nominatim base URL")
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		BaseURL:    u,
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// SetRateLimit replaces the request limiter; tests use rate.Inf.
func (c *Client) SetRateLimit(l rate.Limit) {
	c.limiter = rate.NewLimiter(l, 1)
}

type searchQuery struct {
	Q      string `url:"q"`
	Format string `url:"format"`
	Limit  int    `url:"limit"`
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode returns the best match for q.
func (c *Client) Geocode(ctx context.Context, q string) (model.ResolvedLocation, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return model.ResolvedLocation{}, errors.Wrap(geocode.ErrNotFound, "empty query")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return model.ResolvedLocation{}, errors.Wrap(err, "wait for rate limiter")
	}

	v, err := query.Values(searchQuery{Q: q, Format: "json", Limit: 1})
	if err != nil {
		return model.ResolvedLocation{}, errors.Wrap(err, "encode query parameters")
	}
	u := c.BaseURL.ResolveReference(&url.URL{Path: "/search"})
	u.RawQuery = v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.ResolvedLocation{}, errors.Wrap(err, "create search request")
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return model.ResolvedLocation{}, errors.Wrap(err, "execute search request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.ResolvedLocation{}, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.ResolvedLocation{}, errors.Wrap(err, "decode response")
	}
	if len(results) == 0 {
		return model.ResolvedLocation{}, errors.Wrapf(geocode.ErrNotFound, "no results for %q", q)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return model.ResolvedLocation{}, errors.Wrap(err, "parse latitude")
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return model.ResolvedLocation{}, errors.Wrap(err, "parse longitude")
	}

	return model.ResolvedLocation{
		Latitude:         lat,
		Longitude:        lon,
		CanonicalAddress: results[0].DisplayName,
	}, nil
}
