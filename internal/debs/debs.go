package deps

import (
	"context"
	"fmt"
	"log"

	"github.com/bwise1/lifegroup_locator/config"
	"github.com/bwise1/lifegroup_locator/internal/dataset"
	"github.com/bwise1/lifegroup_locator/internal/geocode"
	googlemaps "github.com/bwise1/lifegroup_locator/internal/http/google"
	"github.com/bwise1/lifegroup_locator/internal/http/mapbox"
	"github.com/bwise1/lifegroup_locator/internal/http/nominatim"
	stadiamaps "github.com/bwise1/lifegroup_locator/internal/http/stadia_maps"
	"github.com/bwise1/lifegroup_locator/internal/links"
	"github.com/bwise1/lifegroup_locator/internal/locator"
	"github.com/bwise1/lifegroup_locator/internal/source"
)

type Dependencies struct {
	Geocoder geocode.Geocoder
	Source   source.RowSource
	Dataset  *dataset.Cache
	Links    *links.Builder
	Locator  *locator.Service
}

func New(cfg *config.Config) *Dependencies {
	d, err := Build(context.Background(), cfg)
	if err != nil {
		log.Panicln("failed to build dependencies", "error", err)
	}
	return d
}

// Build wires the locator pipeline from cfg.
func Build(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	geocoder, err := NewGeocoder(cfg)
	if err != nil {
		return nil, err
	}

	src, err := NewSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	builder, err := links.NewBuilder(cfg.MessageTemplate, cfg.CountryQualifier)
	if err != nil {
		return nil, err
	}

	loader := &dataset.Loader{
		Geocoder: geocoder,
		Country:  cfg.CountryQualifier,
		Timeout:  cfg.GeocodeTimeout,
		Workers:  cfg.GeocodeWorkers,
	}
	cache := dataset.NewCache(src, loader, cfg.DatasetTTL)

	svc := &locator.Service{
		Snapshots:   cache,
		Geocoder:    geocoder,
		Links:       builder,
		Region:      cfg.RegionQualifier,
		Country:     cfg.CountryQualifier,
		Timeout:     cfg.GeocodeTimeout,
		BestMatches: cfg.BestMatches,
		MoreMatches: cfg.MoreMatches,
	}

	return &Dependencies{
		Geocoder: geocoder,
		Source:   src,
		Dataset:  cache,
		Links:    builder,
		Locator:  svc,
	}, nil
}

func NewGeocoder(cfg *config.Config) (geocode.Geocoder, error) {
	switch cfg.Geocoder {
	case config.GeocoderNominatim, "":
		return nominatim.NewClient(cfg.NominatimURL, cfg.NominatimUserAgent)
	case config.GeocoderStadia:
		return stadiamaps.NewClient(cfg.StadiaAPIKey), nil
	case config.GeocoderGoogle:
		return googlemaps.NewGoogleMapsClient(cfg.GoogleMapsAPIKey), nil
	case config.GeocoderMapbox:
		return mapbox.NewMapboxClient(cfg.MapboxAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown geocoder %q", cfg.Geocoder)
	}
}

func NewSource(ctx context.Context, cfg *config.Config) (source.RowSource, error) {
	switch cfg.DataSource {
	case config.SourceSheets, "":
		return source.NewSheet(ctx, cfg.SheetID, cfg.SheetRange, cfg.GoogleCredentialsFile, cfg.GoogleAPIKey)
	case config.SourceCSV:
		if cfg.CSVPath == "" {
			return nil, fmt.Errorf("CSV_PATH is required for the csv source")
		}
		return source.NewCSVFile(cfg.CSVPath), nil
	case config.SourceXLSX:
		if cfg.XLSXPath == "" {
			return nil, fmt.Errorf("XLSX_PATH is required for the xlsx source")
		}
		return source.NewXLSXFile(cfg.XLSXPath, cfg.XLSXSheet), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
