// Command cutr prints selected fields, bytes or characters of each line of
// its standard input.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"github.com/arnodel/cutstream"
	"github.com/arnodel/cutstream/encoding/csv"
	"github.com/arnodel/cutstream/extract"
	"github.com/arnodel/cutstream/internal/logging"
	"github.com/arnodel/cutstream/selector"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const version = "0.1.0"

const description = `Print selected parts of each line of standard input.

LIST is a comma separated list of ranges, each one of N, N-, -M or N-M
(1-based, N-M with N > M counts down).  Line terminators are kept as they
are, including a missing one at the end of the input.`

// CLI defines the command-line interface of cutr.
type CLI struct {
	Fields     rangeList `name:"fields" short:"f" xor:"mode" placeholder:"LIST" help:"Select only these fields."`
	Bytes      rangeList `name:"bytes" short:"b" xor:"mode" placeholder:"LIST" help:"Select only these bytes."`
	Characters rangeList `name:"characters" short:"c" xor:"mode" placeholder:"LIST" help:"Select only these characters (grapheme clusters)."`

	Delimiter *string `name:"delimiter" short:"d" env:"CUTR_DELIMITER" placeholder:"CHAR" help:"Use CHAR instead of TAB as the field delimiter."`
	CSV       bool    `name:"csv" help:"Read each line as a CSV record so that quoted fields may contain the delimiter."`

	Color     string `name:"color" enum:"auto,always,never" default:"auto" env:"CUTR_COLOR" help:"Colour diagnostics (${enum})."`
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"warn" env:"CUTR_LOG_LEVEL" help:"Log level (${enum})."`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" env:"CUTR_LOG_FORMAT" help:"Log format (${enum})."`

	Version kong.VersionFlag `name:"version" help:"Print version information and exit."`
}

// rangeList decodes a selector list flag.  Each occurrence of the flag adds
// to the list.  Values are taken as they are, so "-f -3" selects the first
// three fields rather than reading -3 as a flag.
type rangeList []selector.Range

func (l *rangeList) Decode(ctx *kong.DecodeContext) error {
	t := ctx.Scan.Pop()
	if t.IsEOL() {
		return errors.New("missing value, expecting LIST")
	}
	ranges, err := selector.ParseList(fmt.Sprint(t.Value))
	if err != nil {
		return err
	}
	*l = append(*l, ranges...)
	return nil
}

// Validate is called by kong once the flags are set.
func (c *CLI) Validate() error {
	if len(c.Fields) == 0 && len(c.Bytes) == 0 && len(c.Characters) == 0 {
		return errors.New("one of --fields, --bytes or --characters is required")
	}
	if c.CSV && len(c.Fields) == 0 {
		return errors.New("--csv can only be used with --fields")
	}
	if c.Delimiter != nil {
		r, size := utf8.DecodeRuneInString(*c.Delimiter)
		if size != len(*c.Delimiter) || r == utf8.RuneError {
			return fmt.Errorf("the delimiter must be a single character, got %q", *c.Delimiter)
		}
	}
	return nil
}

func (c *CLI) mode() (extract.Mode, []selector.Range) {
	switch {
	case len(c.Bytes) > 0:
		return extract.Bytes, c.Bytes
	case len(c.Characters) > 0:
		return extract.Characters, c.Characters
	default:
		return extract.Fields, c.Fields
	}
}

func (c *CLI) delimiter() rune {
	if c.Delimiter == nil {
		return extract.DefaultDelimiter
	}
	r, _ := utf8.DecodeRuneInString(*c.Delimiter)
	return r
}

func (c *CLI) extractor() (extract.Extractor, error) {
	mode, ranges := c.mode()
	if c.CSV {
		e, err := csv.NewExtractor(ranges, c.delimiter())
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return extract.New(mode, ranges, c.delimiter())
}

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom of run).
	signal.Ignore(syscall.SIGPIPE)

	// Display a stack trace on panic
	defer func() {
		if e := recover(); e != nil {
			fmt.Fprintf(os.Stderr, "%s: %s", e, debug.Stack())
			os.Exit(2)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitCode is what kong's Exit function panics with, so that run can return
// instead of terminating the process.
type exitCode int

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("cutr"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitCode(code)) }),
		kong.WithHyphenPrefixedParameters(true),
		kong.Vars{"version": version},
	)
	if err != nil {
		return fatalError(stderr, "%s", err)
	}
	_, err = parser.Parse(args)
	parser.FatalIfErrorf(err)

	return cli.run(stdin, stdout, stderr)
}

func (c *CLI) run(stdin io.Reader, stdout, stderr io.Writer) int {
	// The values were checked by kong against the enums.
	level, _ := logging.ParseLevel(c.LogLevel)
	format, _ := logging.ParseFormat(c.LogFormat)
	logger := logging.New(stderr, level, format)

	extractor, err := c.extractor()
	if err != nil {
		return fatalError(stderr, "%s", err)
	}

	// Write the output stream to stdout
	out := bufio.NewWriter(stdout)
	output := &cutstream.DefaultPrinter{Writer: out}

	// If we are writing to a terminal, flush after each line so user gets feedback early.
	if isTerminal(stdout) {
		output.Flusher = out
	}

	var colorizer *cutstream.Colorizer
	switch c.Color {
	case "always":
		colorizer = &defaultColorizer
	case "auto":
		if isTerminal(stderr) {
			colorizer = &defaultColorizer
		}
	}
	diagnostics := stderr
	if f, ok := stderr.(*os.File); ok && colorizer != nil {
		diagnostics = colorable.NewColorable(f)
	}

	pipeline := &cutstream.Pipeline{
		Extractor:        extractor,
		Output:           output,
		Diagnostics:      &cutstream.DefaultPrinter{Writer: diagnostics},
		Colorizer:        colorizer,
		DiagnosticPrefix: "cutr: ",
		Logger:           logger,
	}

	mode, ranges := c.mode()
	logger.Debug("starting pipeline",
		"mode", mode.String(),
		"ranges", selector.Format(ranges),
		"delimiter", string(c.delimiter()),
		"csv", c.CSV)

	stats, err := pipeline.Run(stdin)
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return 0
		}
		return fatalError(stderr, "error: %s", err)
	}
	if stats.Errors > 0 {
		return 1
	}
	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func fatalError(w io.Writer, msg string, args ...any) int {
	fmt.Fprintf(w, "cutr: "+msg+"\n", args...)
	return 1
}

// Some color ANSI codes
var (
	Reset     = []byte("\033[0m")
	BrightRed = []byte("\033[31;1m")
)

var defaultColorizer = cutstream.Colorizer{
	PrefixColorCode: BrightRed,
	ResetCode:       Reset,
}
