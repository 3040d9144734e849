package cutstream

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/arnodel/cutstream/extract"
	"github.com/arnodel/cutstream/internal/scanner"
)

// A Pipeline reads lines, rewrites their content with an Extractor and prints
// them followed by their original terminator.  Lines are processed one at a
// time, so output starts straight away and memory use does not grow with the
// input.
//
// A line that cannot be read or extracted is reported on Diagnostics and
// skipped.  Failing to print anything, be it a line or a diagnostic, stops the
// pipeline.
type Pipeline struct {
	Extractor   extract.Extractor
	Output      Printer
	Diagnostics Printer
	Colorizer   *Colorizer // Used for diagnostics, may be nil

	// Printed at the start of each diagnostic line, e.g. "cutr: ".
	DiagnosticPrefix string

	Logger *slog.Logger // May be nil
}

// Stats counts what happened during a run.
type Stats struct {
	LinesRead    int
	LinesWritten int
	Errors       int // lines that could not be read or extracted
}

// Run processes all the lines of in.  It returns a *PrinterError if output
// failed, in which case the returned Stats are incomplete.
func (p *Pipeline) Run(in io.Reader) (stats Stats, err error) {
	defer CatchPrinterError(&err)

	logger := p.logger()
	lines := scanner.NewLineScanner(in)
	for {
		line, readErr := lines.Next()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			stats.Errors++
			logger.Debug("could not read line", "error", readErr)
			p.report(readErr)
			continue
		}
		stats.LinesRead++
		content, extractErr := p.Extractor.Extract(line.Content)
		if extractErr != nil {
			stats.Errors++
			extractErr = &LineError{Line: lines.LineCount(), Err: extractErr}
			logger.Debug("could not extract line", "error", extractErr)
			p.report(extractErr)
			continue
		}
		p.Output.PrintString(content)
		p.Output.EndLine(line.Terminator)
		stats.LinesWritten++
	}
	logger.Debug("pipeline done",
		"lines_read", stats.LinesRead,
		"lines_written", stats.LinesWritten,
		"errors", stats.Errors)
	return stats, nil
}

func (p *Pipeline) report(err error) {
	if p.Diagnostics == nil {
		return
	}
	p.Colorizer.PrintDiagnostic(p.Diagnostics, p.DiagnosticPrefix, err)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// A LineError is an error that occurred while extracting from a line.
type LineError struct {
	Line int // 1-based line number
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
