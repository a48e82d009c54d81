package reader

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the rows of one worksheet; the first non-empty row is the header.
type XLSXReader struct {
	reader io.Reader
	sheet  string
}

type XLSXOption func(*XLSXReader)

func WithSheet(name string) XLSXOption {
	return func(xr *XLSXReader) {
		xr.sheet = name
	}
}

func NewXLSXReader(reader io.Reader, opts ...XLSXOption) *XLSXReader {
	xr := &XLSXReader{reader: reader}
	for _, opt := range opts {
		opt(xr)
	}
	return xr
}

func (xr *XLSXReader) Read() ([]map[string]string, error) {
	f, err := excelize.OpenReader(xr.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := xr.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, nil
	}

	headers := cleanHeaders(rows[start])
	var records []map[string]string
	for _, row := range rows[start+1:] {
		if isBlank(row) {
			continue
		}
		records = append(records, toRecord(headers, row))
	}
	return records, nil
}
