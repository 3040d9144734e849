// Package extract rewrites the content of a line so that it only contains
// selected units: delimited fields, bytes or grapheme clusters.
//
// The three modes do not combine positions the same way.  In field mode
// every position picks one field and the picked fields are joined with the
// delimiter.  In byte and character mode each range picks one contiguous run
// of units, from its lowest to its highest position on the line, and the runs
// are concatenated.
package extract

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/arnodel/cutstream/selector"
)

// A Mode says what the positions of a range refer to.
type Mode int

const (
	Fields Mode = iota + 1
	Bytes
	Characters
)

func (m Mode) String() string {
	switch m {
	case Fields:
		return "fields"
	case Bytes:
		return "bytes"
	case Characters:
		return "characters"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// DefaultDelimiter separates fields when no other delimiter is given.
const DefaultDelimiter = '\t'

var (
	ErrUnknownMode      = errors.New("unknown mode")
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

// An Extractor computes the new content of a line.  The content never
// includes the line terminator.
type Extractor interface {
	Extract(content string) (string, error)
}

// New returns the Extractor for the given mode.  The delimiter is only used
// in field mode.
func New(mode Mode, ranges []selector.Range, delimiter rune) (Extractor, error) {
	switch mode {
	case Fields:
		if err := ValidateDelimiter(delimiter); err != nil {
			return nil, err
		}
		return &FieldExtractor{Ranges: ranges, Delimiter: delimiter}, nil
	case Bytes:
		return &ByteExtractor{Ranges: ranges}, nil
	case Characters:
		return &CharacterExtractor{Ranges: ranges}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// ValidateDelimiter checks that d can separate fields within a line.
func ValidateDelimiter(d rune) error {
	if d == '\n' || d == utf8.RuneError || !utf8.ValidRune(d) {
		return fmt.Errorf("%w %q", ErrInvalidDelimiter, d)
	}
	return nil
}

// FieldExtractor keeps the fields at the selected positions.
type FieldExtractor struct {
	Ranges    []selector.Range
	Delimiter rune
}

var _ Extractor = &FieldExtractor{}

func (e *FieldExtractor) Extract(content string) (string, error) {
	fields := SplitFields(content, e.Delimiter)
	return JoinFields(PickEach(fields, e.Ranges), e.Delimiter), nil
}

// ByteExtractor keeps the selected runs of bytes.  A run that cuts through a
// multi-byte character gets U+FFFD in place of the broken sequence.
type ByteExtractor struct {
	Ranges []selector.Range
}

var _ Extractor = &ByteExtractor{}

func (e *ByteExtractor) Extract(content string) (string, error) {
	var out []byte
	for _, span := range PickSpans(SplitBytes(content), e.Ranges) {
		out = append(out, RepairUTF8(span)...)
	}
	return string(out), nil
}

// CharacterExtractor keeps the selected runs of grapheme clusters.
type CharacterExtractor struct {
	Ranges []selector.Range
}

var _ Extractor = &CharacterExtractor{}

func (e *CharacterExtractor) Extract(content string) (string, error) {
	var out []byte
	for _, span := range PickSpans(SplitGraphemes(content), e.Ranges) {
		for _, cluster := range span {
			out = append(out, cluster...)
		}
	}
	return string(out), nil
}
