package deps

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bwise1/lifegroup_locator/config"
	googlemaps "github.com/bwise1/lifegroup_locator/internal/http/google"
	"github.com/bwise1/lifegroup_locator/internal/http/mapbox"
	"github.com/bwise1/lifegroup_locator/internal/http/nominatim"
	stadiamaps "github.com/bwise1/lifegroup_locator/internal/http/stadia_maps"
	"github.com/bwise1/lifegroup_locator/internal/source"
)

func TestNewGeocoder(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		check   func(interface{}) bool
		wantErr bool
	}{
		{"default", "", func(g interface{}) bool { _, ok := g.(*nominatim.Client); return ok }, false},
		{"stadia", config.GeocoderStadia, func(g interface{}) bool { _, ok := g.(*stadiamaps.Client); return ok }, false},
		{"google", config.GeocoderGoogle, func(g interface{}) bool { _, ok := g.(*googlemaps.GoogleMapsClient); return ok }, false},
		{"mapbox", config.GeocoderMapbox, func(g interface{}) bool { _, ok := g.(*mapbox.MapboxClient); return ok }, false},
		{"unknown", "bing", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Geocoder:           tt.kind,
				NominatimURL:       "https://nominatim.openstreetmap.org",
				NominatimUserAgent: "test",
			}
			g, err := NewGeocoder(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewGeocoder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !tt.check(g) {
				t.Errorf("NewGeocoder() = %T", g)
			}
		})
	}
}

func TestNewSource(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "lifes.csv")
	if err := os.WriteFile(csvPath, []byte("Name,Address\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"csv", config.Config{DataSource: config.SourceCSV, CSVPath: csvPath}, false},
		{"csv without path", config.Config{DataSource: config.SourceCSV}, true},
		{"xlsx", config.Config{DataSource: config.SourceXLSX, XLSXPath: "lifes.xlsx"}, false},
		{"xlsx without path", config.Config{DataSource: config.SourceXLSX}, true},
		{"sheets with api key", config.Config{DataSource: config.SourceSheets, SheetID: "abc", SheetRange: "A:Z", GoogleAPIKey: "key"}, false},
		{"sheets without auth", config.Config{DataSource: config.SourceSheets, SheetID: "abc"}, true},
		{"unknown", config.Config{DataSource: "postgres"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSource(context.Background(), &tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSource() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "lifes.csv")
	if err := os.WriteFile(csvPath, []byte("Name,Address\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		DataSource:         config.SourceCSV,
		CSVPath:            csvPath,
		Geocoder:           config.GeocoderNominatim,
		NominatimURL:       "https://nominatim.openstreetmap.org",
		NominatimUserAgent: "test",
		CountryQualifier:   "Brasil",
		GeocodeTimeout:     time.Second,
		DatasetTTL:         time.Minute,
		BestMatches:        3,
		MoreMatches:        7,
	}

	d, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := d.Source.(*source.CSVFile); !ok {
		t.Errorf("Source = %T", d.Source)
	}
	if d.Locator.Snapshots != d.Dataset || d.Locator.Links != d.Links {
		t.Error("locator is not wired to the shared cache and link builder")
	}

	// header-only sheet yields a data-unavailable snapshot, not a panic
	if snap := d.Dataset.Get(context.Background()); snap.Available() {
		t.Error("empty sheet should not be available")
	}

	cfg.MessageTemplate = "{{.Broken"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Error("expected error for bad message template")
	}
}
