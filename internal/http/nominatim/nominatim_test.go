package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwise1/lifegroup_locator/internal/geocode"
	"golang.org/x/time/rate"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, "test-agent")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	c.SetRateLimit(rate.Inf)
	return c
}

func TestGeocode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Av. Paulista, 1000, Brasil" {
			t.Errorf("q = %q", got)
		}
		if r.URL.Query().Get("format") != "json" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`[{"lat":"-23.5614","lon":"-46.6559","display_name":"Avenida Paulista, São Paulo"}]`))
	})

	loc, err := c.Geocode(context.Background(), "Av. Paulista, 1000, Brasil")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Latitude != -23.5614 || loc.Longitude != -46.6559 {
		t.Errorf("coordinates = %v,%v", loc.Latitude, loc.Longitude)
	}
	if loc.CanonicalAddress != "Avenida Paulista, São Paulo" {
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
		{"empty result", http.StatusOK, `[]`, geocode.ReasonNotFound},
		{"server error", http.StatusInternalServerError, `boom`, geocode.ReasonTransport},
		{"bad json", http.StatusOK, `{`, geocode.ReasonTransport},
		{"bad latitude", http.StatusOK, `[{"lat":"x","lon":"1"}]`, geocode.ReasonTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Geocode(context.Background(), "Rua Inexistente, Brasil")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := geocode.Classify(err); got != tt.want {
				t.Errorf("Classify() = %q, want %q (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestGeocodeEmptyQuery(t *testing.T) {
	c, err := NewClient("", "")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := c.Geocode(context.Background(), "  "); geocode.Classify(err) != geocode.ReasonNotFound {
		t.Errorf("expected not-found, got %v", err)
	}
}
