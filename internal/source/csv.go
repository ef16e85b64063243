package source

import (
	"context"
	"encoding/csv"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// CSVFile reads the table from a CSV export of the sheet.
type CSVFile struct {
	Path string
}

func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

func (c *CSVFile) Fetch(ctx context.Context) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}

	f, err := os.Open(c.Path)
	if err != nil {
		return Table{}, errors.Wrapf(err, "open csv %s", c.Path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, errors.Wrapf(err, "read csv %s", c.Path)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = trimBOM(records[0][0])
	}
	return fromRecords(records)
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
