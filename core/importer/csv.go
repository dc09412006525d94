package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/huangsam/elimu/schema"
)

// CSVSource streams the data rows of a CSV upload keyed by its header line.
type CSVSource struct {
	reader  *csv.Reader
	headers []string
	err     error
}

// NewCSVSource reads the header line of r. A leading byte order mark is
// dropped and ragged rows are tolerated.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	return &CSVSource{reader: cr, headers: headers}, nil
}

// Headers returns the raw header line.
func (s *CSVSource) Headers() []string {
	return slices.Clone(s.headers)
}

// Rows yields one RawRow per non-blank line. Reading stops at the first
// malformed line; Err reports it afterwards.
func (s *CSVSource) Rows() iter.Seq[schema.RawRow] {
	return func(yield func(schema.RawRow) bool) {
		for {
			record, err := s.reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				s.err = err
				return
			}
			if blankRecord(record) {
				continue
			}
			row := make(schema.RawRow, len(s.headers))
			for i, h := range s.headers {
				if i >= len(record) {
					break
				}
				if prev, ok := row[h].(string); ok && prev != "" {
					continue
				}
				row[h] = record[i]
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Err returns the first read error encountered by Rows.
func (s *CSVSource) Err() error {
	return s.err
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
