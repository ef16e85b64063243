package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwise1/lifegroup_locator/internal/geocode"
)

func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/geocode/v6/forward" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Rua B, Brasil" || q.Get("limit") != "1" || q.Get("country") != "br" || q.Get("access_token") != "tok" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[-46.6,-23.5]},"properties":{"full_address":"Rua B, São Paulo"}}]}`))
	}))
	defer srv.Close()

	c := NewMapboxClient("tok")
	c.BaseURL = srv.URL

	loc, err := c.Geocode(context.Background(), "Rua B, Brasil")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != -23.5 || loc.Longitude != -46.6 {
		t.Errorf("coordinates = (%v, %v)", loc.Latitude, loc.Longitude)
	}
	if loc.CanonicalAddress != "Rua B, São Paulo" {
		t.Errorf("CanonicalAddress = %q", loc.CanonicalAddress)
	}
}

func TestGeocodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   geocode.Reason
	}{
		{"no features", http.StatusOK, `{"type":"FeatureCollection","features":[]}`, geocode.ReasonNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Not Authorized"}`, geocode.ReasonTransport},
		{"malformed", http.StatusOK, `{`, geocode.ReasonTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewMapboxClient("tok")
			c.BaseURL = srv.URL
			_, err := c.Geocode(context.Background(), "Rua B")
			if got := geocode.Classify(err); got != tt.want {
				t.Errorf("Classify() = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}
