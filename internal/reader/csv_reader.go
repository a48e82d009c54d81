package reader

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

type CSVReader struct {
	reader io.Reader
	comma  rune
}

type CSVOption func(*CSVReader)

// WithComma sets the field delimiter, e.g. '\t' for a block pasted from a spreadsheet.
func WithComma(r rune) CSVOption {
	return func(cr *CSVReader) {
		cr.comma = r
	}
}

func NewCSVReader(reader io.Reader, opts ...CSVOption) *CSVReader {
	cr := &CSVReader{
		reader: reader,
		comma:  ',',
	}
	for _, opt := range opts {
		opt(cr)
	}
	return cr
}

// NewTSVReader reads a tab separated block, the format of cells copied out of a spreadsheet.
func NewTSVReader(reader io.Reader) *CSVReader {
	return NewCSVReader(reader, WithComma('\t'))
}

func (cr *CSVReader) Read() ([]map[string]string, error) {
	csvReader := csv.NewReader(cr.reader)
	csvReader.Comma = cr.comma
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	headers, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	headers = cleanHeaders(headers)

	var records []map[string]string
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}
		records = append(records, toRecord(headers, row))
	}

	return records, nil
}

func cleanHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// toRecord pairs cells with headers; missing trailing cells become empty strings and
// cells under an empty header are ignored.
func toRecord(headers, row []string) map[string]string {
	record := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(row) {
			record[h] = strings.TrimSpace(row[i])
		} else {
			record[h] = ""
		}
	}
	return record
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
