package source

import (
	"context"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XLSXFile reads the table from a workbook. Sheet defaults to the first sheet.
type XLSXFile struct {
	Path  string
	Sheet string
}

func NewXLSXFile(path, sheet string) *XLSXFile {
	return &XLSXFile{Path: path, Sheet: sheet}
}

func (x *XLSXFile) Fetch(ctx context.Context) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}

	f, err := excelize.OpenFile(x.Path)
	if err != nil {
		return Table{}, errors.Wrapf(err, "open workbook %s", x.Path)
	}
	defer f.Close()

	sheet := x.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return fromRecords(rows)
}
