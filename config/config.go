package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/joho/godotenv"
)

const (
	SourceSheets = "sheets"
	SourceCSV    = "csv"
	SourceXLSX   = "xlsx"

	GeocoderNominatim = "nominatim"
	GeocoderStadia    = "stadia"
	GeocoderGoogle    = "google"
	GeocoderMapbox    = "mapbox"
)

type Config struct {
	Port        int      `env:"PORT" envDefault:"8080"`
	CorsOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	DataSource            string `env:"DATA_SOURCE" envDefault:"sheets"`
	SheetID               string `env:"SHEET_ID"`
	SheetRange            string `env:"SHEET_RANGE" envDefault:"A:Z"`
	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`
	GoogleAPIKey          string `env:"GOOGLE_API_KEY"`
	CSVPath               string `env:"CSV_PATH"`
	XLSXPath              string `env:"XLSX_PATH"`
	XLSXSheet             string `env:"XLSX_SHEET"`

	Geocoder           string        `env:"GEOCODER" envDefault:"nominatim"`
	NominatimURL       string        `env:"NOMINATIM_URL" envDefault:"https://nominatim.openstreetmap.org"`
	NominatimUserAgent string        `env:"NOMINATIM_USER_AGENT" envDefault:"lifegroup_locator/1.0"`
	StadiaAPIKey       string        `env:"STADIA_API_KEY"`
	GoogleMapsAPIKey   string        `env:"GOOGLE_MAPS_API_KEY"`
	MapboxAPIKey       string        `env:"MAPBOX_API_KEY"`
	GeocodeTimeout     time.Duration `env:"GEOCODE_TIMEOUT" envDefault:"10s"`
	GeocodeWorkers     int           `env:"GEOCODE_WORKERS" envDefault:"1"`
	CountryQualifier   string        `env:"COUNTRY_QUALIFIER" envDefault:"Brasil"`
	RegionQualifier    string        `env:"REGION_QUALIFIER"`

	DatasetTTL      time.Duration `env:"DATASET_TTL" envDefault:"600s"`
	// negative page sizes fall back to 3 and 7; 0 turns the page off
	BestMatches     int           `env:"BEST_MATCHES" envDefault:"3"`
	MoreMatches     int           `env:"MORE_MATCHES" envDefault:"7"`
	MessageTemplate string        `env:"MESSAGE_TEMPLATE"`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file %v", loadErr)
	}

	var cfg Config

	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}
