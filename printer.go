package cutstream

import (
	"fmt"
	"io"
)

// The Printer interface is used to send out lines of text.
//
// PrintBytes() and PrintString() output data on the current line
// EndLine() terminates the current line with the given terminator
//
// The methods do not return an error because for this program it's assumed
// to be an exceptional case that outputting results in an error and the only
// sensible outcome is to stop the program.
// Instead, implementations are expected to panic with a *PrinterError when
// they encounter and error.  A user of the Printer interface can use
//
//	func printingFunction(p Printer) (err error) {
//	    defer CatchPrinterError(&err)
//	    return doSomePrinting(printer)
//	}
//
// to capture such errors.
type Printer interface {
	PrintBytes([]byte)
	PrintString(string)
	EndLine(terminator string)
}

// CatchPrinterError can be used to capture panics caused by a Printer because
// of an error encountered while attempting to send output.  See the Printer
// interface documentation for details.
func CatchPrinterError(err *error) {
	if r := recover(); r != nil {
		perr, ok := r.(*PrinterError)
		if ok {
			*err = perr
		} else {
			panic(r)
		}
	}
}

// A PrinterError contains an error that occurred while a Printer implementation
// was sending some output.
type PrinterError struct {
	Err error
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("printer error: %s", e.Err)
}

func (e *PrinterError) Unwrap() error {
	return e.Err
}

// A Flusher pushes buffered output to its destination.  *bufio.Writer is a
// Flusher.
type Flusher interface {
	Flush() error
}

// DefaultPrinter implements a Printer which uses an io.Writer to send output.
// If Flusher is not nil, it is flushed at the end of each line, which is
// useful when a person is watching the output.
type DefaultPrinter struct {
	io.Writer
	Flusher Flusher
}

var _ Printer = &DefaultPrinter{}

// PrintBytes sends the gives bytes verbatim to the printer's writer.
func (p *DefaultPrinter) PrintBytes(b []byte) {
	_, err := p.Write(b)
	if err != nil {
		panic(wrapError(err))
	}
}

// PrintString sends the given string verbatim to the printer's writer.
func (p *DefaultPrinter) PrintString(s string) {
	_, err := io.WriteString(p.Writer, s)
	if err != nil {
		panic(wrapError(err))
	}
}

// EndLine writes the terminator then flushes if required.  An empty
// terminator is allowed for the last line of a stream.
func (p *DefaultPrinter) EndLine(terminator string) {
	p.PrintString(terminator)
	if p.Flusher != nil {
		if err := p.Flusher.Flush(); err != nil {
			panic(wrapError(err))
		}
	}
}

func wrapError(err error) *PrinterError {
	return &PrinterError{Err: err}
}
