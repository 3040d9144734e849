// Package rangeparser implements a parser for selector tokens.
//
// The accepted forms are
//
//	N     a single position, same as N-N
//	N-    from N to the end of the line
//	-M    from the first position to M
//	N-M   from N to M (descending when N > M)
package rangeparser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/arnodel/grammar"
)

type Token = grammar.SimpleToken

// Selector is the root of the grammar.  Span is tried first so that "3-"
// is not read as the single position 3 followed by garbage.
type Selector struct {
	grammar.OneOf
	*Span
	Single *Token `tok:"int"`
}

type Span struct {
	grammar.Seq
	Start *Token `tok:"int"`
	Dash  Token  `tok:"op,-"`
	End   *Token `tok:"int"`
}

var (
	ErrMissingBound  = errors.New("at least one bound is required")
	ErrTrailingInput = errors.New("unexpected trailing input")
)

// Bounds returns the start and end of the selector, 0 standing for a bound
// that was left out.
func (s *Selector) Bounds() (start, end int, err error) {
	switch {
	case s.Single != nil:
		start, err = parseInt(s.Single.TokValue)
		return start, start, err
	case s.Span != nil:
		return s.Span.Bounds()
	default:
		panic("invalid Selector")
	}
}

func (s *Span) Bounds() (start, end int, err error) {
	if s.Start == nil && s.End == nil {
		return 0, 0, ErrMissingBound
	}
	if s.Start != nil {
		start, err = parseInt(s.Start.TokValue)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid start: %w", err)
		}
	}
	if s.End != nil {
		end, err = parseInt(s.End.TokValue)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end: %w", err)
		}
	}
	return start, end, nil
}

// ParseSelectorString parses a whole selector token and returns its bounds.
func ParseSelectorString(s string) (start, end int, err error) {
	stream, err := TokeniseRangeString(s)
	if err != nil {
		return 0, 0, err
	}
	var sel Selector
	parseErr := grammar.Parse(&sel, stream)
	if parseErr != nil {
		return 0, 0, parseErr
	}
	if n := stream.Next(); n != grammar.EOF {
		return 0, 0, ErrTrailingInput
	}
	return sel.Bounds()
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
