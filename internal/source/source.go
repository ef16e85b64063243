// Package source fetches the raw meeting table from wherever the sheet lives.
package source

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyTable is returned when a source yields no header row.
var ErrEmptyTable = errors.New("source table has no header row")

// Table is a header row plus the data rows beneath it. Rows may be ragged.
type Table struct {
	Header []string
	Rows   [][]string
}

// RowSource fetches the current table.
type RowSource interface {
	Fetch(ctx context.Context) (Table, error)
}

// fromRecords splits records into header and rows, skipping leading blank lines.
func fromRecords(records [][]string) (Table, error) {
	for i, rec := range records {
		if blankRecord(rec) {
			continue
		}
		return Table{Header: rec, Rows: records[i+1:]}, nil
	}
	return Table{}, ErrEmptyTable
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
