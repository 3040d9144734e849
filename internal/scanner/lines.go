package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const defaultBufSize = 64 * 1024

// MaxConsecutiveReadErrors is the number of failed reads in a row after which
// a LineScanner stops asking its reader for more input.
const MaxConsecutiveReadErrors = 100

// A Line is the content of one input line together with the exact bytes that
// ended it: "\n", "\r\n" or "" for a final line with no newline.
type Line struct {
	Content    string
	Terminator string
}

// A LineReadError is returned by LineScanner.Next when the underlying reader
// fails while a line is being read.  The scanner can still be used after it.
type LineReadError struct {
	Line int // 1-based number of the line that could not be read
	Err  error
}

func (e *LineReadError) Error() string {
	return fmt.Sprintf("line %d: read error: %s", e.Line, e.Err)
}

func (e *LineReadError) Unwrap() error {
	return e.Err
}

// A LineScanner splits its input into lines, keeping track of how each line
// was terminated.  No assumption is made about the encoding of the input.
type LineScanner struct {
	reader *bufio.Reader

	// Number of lines handed out so far, including failed ones.
	lineCount int

	// Read failures since the last successful line.
	errorCount int

	done bool
}

func NewLineScanner(reader io.Reader) *LineScanner {
	return NewLineScannerSize(reader, defaultBufSize)
}

func NewLineScannerSize(reader io.Reader, size int) *LineScanner {
	return &LineScanner{reader: bufio.NewReaderSize(reader, size)}
}

// Next returns the next line of input.  It returns io.EOF when there are no
// more lines and a *LineReadError when the line could not be read, in which
// case Next may be called again to get the following line.
func (s *LineScanner) Next() (Line, error) {
	if s.done {
		return Line{}, io.EOF
	}
	raw, err := s.reader.ReadBytes('\n')
	switch {
	case err == nil:
	case err == io.EOF:
		s.done = true
		if len(raw) == 0 {
			return Line{}, io.EOF
		}
	default:
		// Whatever was read before the failure is dropped with the line.
		s.lineCount++
		s.errorCount++
		if s.errorCount >= MaxConsecutiveReadErrors {
			s.done = true
		}
		return Line{}, &LineReadError{Line: s.lineCount, Err: err}
	}
	s.lineCount++
	s.errorCount = 0
	content, terminator := SplitTerminator(raw)
	return Line{Content: string(content), Terminator: string(terminator)}, nil
}

// LineCount returns the number of lines returned by Next so far, failed
// lines included.
func (s *LineScanner) LineCount() int {
	return s.lineCount
}

// SplitTerminator splits raw at its last '\n'.  A '\r' just before it is part
// of the terminator.  When there is no '\n' the terminator is empty.
func SplitTerminator(raw []byte) (content, terminator []byte) {
	i := bytes.LastIndexByte(raw, '\n')
	switch {
	case i < 0:
		return raw, nil
	case i > 0 && raw[i-1] == '\r':
		return raw[:i-1], raw[i-1:]
	default:
		return raw[:i], raw[i:]
	}
}
