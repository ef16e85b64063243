package source

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheet reads the table from a Google spreadsheet through the Sheets v4 API.
type Sheet struct {
	SpreadsheetID string
	Range         string
	opts          []option.ClientOption
}

// NewSheet authenticates with a service account JSON file when credentialsFile is
// set, otherwise with apiKey (public sheets only).
func NewSheet(ctx context.Context, spreadsheetID, rng, credentialsFile, apiKey string) (*Sheet, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}

	s := &Sheet{SpreadsheetID: spreadsheetID, Range: rng}
	switch {
	case credentialsFile != "":
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, errors.Wrap(err, "read google credentials")
		}
		conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, errors.Wrap(err, "parse google credentials")
		}
		s.opts = append(s.opts, option.WithHTTPClient(conf.Client(ctx)))
	case apiKey != "":
		s.opts = append(s.opts, option.WithAPIKey(apiKey))
	default:
		return nil, errors.New("google credentials file or api key is required")
	}
	return s, nil
}

// WithOptions appends client options, e.g. option.WithEndpoint for tests.
func (s *Sheet) WithOptions(opts ...option.ClientOption) *Sheet {
	s.opts = append(s.opts, opts...)
	return s
}

func (s *Sheet) Fetch(ctx context.Context) (Table, error) {
	srv, err := sheets.NewService(ctx, s.opts...)
	if err != nil {
		return Table{}, errors.Wrap(err, "create sheets service")
	}

	resp, err := srv.Spreadsheets.Values.Get(s.SpreadsheetID, s.Range).Context(ctx).Do()
	if err != nil {
		return Table{}, errors.Wrapf(err, "get values %s", s.Range)
	}

	records := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rec := make([]string, len(row))
		for i, cell := range row {
			rec[i] = cellString(cell)
		}
		records = append(records, rec)
	}
	return fromRecords(records)
}

// cellString renders a decoded JSON cell. Numbers keep their integer form so
// phone columns stored as numbers survive.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
