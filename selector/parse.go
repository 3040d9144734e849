package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnodel/cutstream/internal/rangeparser"
	"github.com/arnodel/cutstream/internal/scanner"
)

var (
	ErrEmptyToken          = errors.New("empty range")
	ErrUnexpectedCharacter = errors.New("unexpected character")
)

// A ParseError is returned when a selector token is not a valid range.
type ParseError struct {
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a token of the form N, N-, -M or N-M.
func Parse(token string) (Range, error) {
	if token == "" {
		return Range{}, &ParseError{Token: token, Err: ErrEmptyToken}
	}
	for _, c := range []byte(token) {
		if c != '-' && !scanner.IsDigit(c) {
			return Range{}, &ParseError{Token: token, Err: fmt.Errorf("%w %q", ErrUnexpectedCharacter, c)}
		}
	}
	start, end, err := rangeparser.ParseSelectorString(token)
	if err != nil {
		return Range{}, &ParseError{Token: token, Err: err}
	}
	return New(start, end), nil
}

// ParseList parses a comma separated list of tokens.  The order of the
// ranges is kept and duplicates are not removed.
func ParseList(list string) ([]Range, error) {
	tokens := strings.Split(list, ",")
	ranges := make([]Range, 0, len(tokens))
	for _, token := range tokens {
		r, err := Parse(token)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so that ranges can be
// decoded directly from command line flags.
func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
