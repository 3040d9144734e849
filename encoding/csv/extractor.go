// Package csv implements field selection on lines holding quoted records.
//
// Unlike the plain field mode, a delimiter inside a quoted field does not
// split it.  Each line is read as exactly one record, so a quoted field
// cannot span several lines.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/arnodel/cutstream/extract"
	"github.com/arnodel/cutstream/selector"
)

// An Extractor reads the content of a line as a CSV record, keeps the fields
// at the selected positions and writes them back as a CSV record, quoting
// them as needed.
type Extractor struct {
	Ranges    []selector.Range
	Delimiter rune
}

var _ extract.Extractor = &Extractor{}

// NewExtractor sets up a new Extractor.  The delimiter cannot be a quote or
// a line break.
func NewExtractor(ranges []selector.Range, delimiter rune) (*Extractor, error) {
	if delimiter == '"' || delimiter == '\r' || delimiter == 0 {
		return nil, fmt.Errorf("%w %q", extract.ErrInvalidDelimiter, delimiter)
	}
	if err := extract.ValidateDelimiter(delimiter); err != nil {
		return nil, err
	}
	return &Extractor{Ranges: ranges, Delimiter: delimiter}, nil
}

// Extract returns the selected fields of content.  It fails when content is
// not a single well formed record.
func (e *Extractor) Extract(content string) (string, error) {
	record, err := e.readRecord(content)
	if err != nil {
		return "", err
	}
	return e.writeRecord(extract.PickEach(record, e.Ranges))
}

func (e *Extractor) readRecord(content string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = e.Delimiter
	reader.FieldsPerRecord = -1
	record, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			// The csv reader skips empty lines, the plain field mode sees
			// one empty field.
			return []string{""}, nil
		}
		return nil, err
	}
	return record, nil
}

func (e *Extractor) writeRecord(fields []string) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = e.Delimiter
	if err := writer.Write(fields); err != nil {
		return "", err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
