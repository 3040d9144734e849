package cutstream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/arnodel/cutstream/encoding/csv"
	"github.com/arnodel/cutstream/extract"
	"github.com/arnodel/cutstream/internal/logging"
	"github.com/arnodel/cutstream/selector"
)

func newExtractor(t *testing.T, mode extract.Mode, list string, delimiter rune) extract.Extractor {
	t.Helper()
	ranges, err := selector.ParseList(list)
	if err != nil {
		t.Fatalf("ParseList(%q): %s", list, err)
	}
	e, err := extract.New(mode, ranges, delimiter)
	if err != nil {
		t.Fatalf("extract.New: %s", err)
	}
	return e
}

func runPipeline(t *testing.T, e extract.Extractor, in io.Reader) (stdout, stderr string, stats Stats) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	p := &Pipeline{
		Extractor:        e,
		Output:           &DefaultPrinter{Writer: &outBuf},
		Diagnostics:      &DefaultPrinter{Writer: &errBuf},
		DiagnosticPrefix: "cutr: ",
	}
	stats, err := p.Run(in)
	if err != nil {
		t.Fatalf("Run: unexpected error %s", err)
	}
	return outBuf.String(), errBuf.String(), stats
}

func TestPipeline(t *testing.T) {
	tests := []struct {
		name      string
		mode      extract.Mode
		list      string
		delimiter rune
		input     string
		want      string
	}{
		{
			name:      "fields",
			mode:      extract.Fields,
			list:      "1,3",
			delimiter: ',',
			input:     "a,b,c\n",
			want:      "a,c\n",
		},
		{
			name:      "missing field",
			mode:      extract.Fields,
			list:      "5",
			delimiter: ',',
			input:     "a,b,c\n",
			want:      "\n",
		},
		{
			name:  "bytes",
			mode:  extract.Bytes,
			list:  "2-4",
			input: "hello\n",
			want:  "ell\n",
		},
		{
			name:  "characters",
			mode:  extract.Characters,
			list:  "3",
			input: "abe\u0301x\n",
			want:  "e\u0301\n",
		},
		{
			name:      "crlf kept",
			mode:      extract.Fields,
			list:      "2",
			delimiter: '\t',
			input:     "a\tb\r\nc\td\r\n",
			want:      "b\r\nd\r\n",
		},
		{
			name:  "no final newline",
			mode:  extract.Bytes,
			list:  "1",
			input: "ab\ncd",
			want:  "a\nc",
		},
		{
			name:  "mixed terminators",
			mode:  extract.Characters,
			list:  "1-",
			input: "x\r\ny\nz",
			want:  "x\r\ny\nz",
		},
		{
			name:  "empty lines",
			mode:  extract.Bytes,
			list:  "1",
			input: "\n\r\n\n",
			want:  "\n\r\n\n",
		},
		{
			name:  "empty input",
			mode:  extract.Bytes,
			list:  "1",
			input: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newExtractor(t, tt.mode, tt.list, tt.delimiter)
			stdout, stderr, _ := runPipeline(t, e, strings.NewReader(tt.input))
			if stdout != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stdout)
			}
			if stderr != "" {
				t.Errorf("unexpected diagnostics %q", stderr)
			}
		})
	}
}

var errBoom = errors.New("boom")

// flakyReader fails once, after the first line.
type flakyReader struct {
	chunks []string
	failed bool
}

func (r *flakyReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	if len(r.chunks) == 2 && !r.failed {
		r.failed = true
		return 0, errBoom
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestPipelineContinuesAfterReadError(t *testing.T) {
	e := newExtractor(t, extract.Fields, "2", ',')
	in := &flakyReader{chunks: []string{"a,1\n", "b,2\n", "c,3\n"}}
	stdout, stderr, stats := runPipeline(t, e, in)
	if stdout != "1\n2\n3\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if stderr != "cutr: line 2: read error: boom\n" {
		t.Errorf("unexpected diagnostics %q", stderr)
	}
	if stats != (Stats{LinesRead: 3, LinesWritten: 3, Errors: 1}) {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestPipelineReportsExtractErrors(t *testing.T) {
	e, err := csv.NewExtractor([]selector.Range{selector.New(2, 2)}, ',')
	if err != nil {
		t.Fatalf("csv.NewExtractor: %s", err)
	}
	stdout, stderr, stats := runPipeline(t, e, strings.NewReader("a,\"b,c\"\nx,\"y\n1,2\n"))
	if stdout != "\"b,c\"\n2\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if !strings.HasPrefix(stderr, "cutr: line 2: ") {
		t.Errorf("unexpected diagnostics %q", stderr)
	}
	if stats != (Stats{LinesRead: 3, LinesWritten: 2, Errors: 1}) {
		t.Errorf("unexpected stats %+v", stats)
	}
}

// limitedWriter accepts n writes then fails.
type limitedWriter struct {
	n int
	bytes.Buffer
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errBoom
	}
	w.n--
	return w.Buffer.Write(p)
}

func (w *limitedWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func TestPipelineStopsOnOutputError(t *testing.T) {
	out := &limitedWriter{n: 2}
	p := &Pipeline{
		Extractor: newExtractor(t, extract.Bytes, "1", 0),
		Output:    &DefaultPrinter{Writer: out},
	}
	stats, err := p.Run(strings.NewReader("ab\ncd\nef\n"))
	var perr *PrinterError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a *PrinterError, got %v", err)
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected the error to wrap errBoom, got %v", err)
	}
	if out.String() != "a\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if stats.LinesWritten != 1 {
		t.Fatalf("expected 1 line written, got %d", stats.LinesWritten)
	}
}

func TestPipelineStopsOnDiagnosticError(t *testing.T) {
	var out bytes.Buffer
	p := &Pipeline{
		Extractor:   newExtractor(t, extract.Bytes, "1", 0),
		Output:      &DefaultPrinter{Writer: &out},
		Diagnostics: &DefaultPrinter{Writer: &limitedWriter{}},
	}
	in := &flakyReader{chunks: []string{"a\n", "b\n", "c\n"}}
	_, err := p.Run(in)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if out.String() != "a\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

type countingFlusher struct {
	count int
}

func (f *countingFlusher) Flush() error {
	f.count++
	return nil
}

func TestPipelineFlushesEachLine(t *testing.T) {
	var out bytes.Buffer
	flusher := &countingFlusher{}
	p := &Pipeline{
		Extractor: newExtractor(t, extract.Characters, "1-", 0),
		Output:    &DefaultPrinter{Writer: &out, Flusher: flusher},
	}
	if _, err := p.Run(strings.NewReader("1\n2\n3")); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if flusher.count != 3 {
		t.Fatalf("expected 3 flushes, got %d", flusher.count)
	}
}

func TestColorizedDiagnostics(t *testing.T) {
	var out, diag bytes.Buffer
	p := &Pipeline{
		Extractor:        newExtractor(t, extract.Bytes, "1", 0),
		Output:           &DefaultPrinter{Writer: &out},
		Diagnostics:      &DefaultPrinter{Writer: &diag},
		Colorizer:        &Colorizer{PrefixColorCode: []byte("<red>"), ResetCode: []byte("<reset>")},
		DiagnosticPrefix: "cutr: ",
	}
	in := &flakyReader{chunks: []string{"a\n", "b\n", "c\n"}}
	if _, err := p.Run(in); err != nil {
		t.Fatalf("unexpected error %s", err)
	}
	if got, want := diag.String(), "<red>cutr: <reset>line 2: read error: boom\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// Per-line errors are logged at debug level so that a logger sharing the
// diagnostic stream at its default level adds nothing to the one
// diagnostic line.
func TestPipelineOneDiagnosticLinePerError(t *testing.T) {
	e, err := csv.NewExtractor([]selector.Range{selector.New(1, 1)}, ',')
	if err != nil {
		t.Fatalf("csv.NewExtractor: %s", err)
	}
	var out, diag bytes.Buffer
	p := &Pipeline{
		Extractor:        e,
		Output:           &DefaultPrinter{Writer: &out},
		Diagnostics:      &DefaultPrinter{Writer: &diag},
		DiagnosticPrefix: "cutr: ",
		Logger:           logging.New(&diag, logging.LevelWarn, logging.FormatText),
	}
	stats, err := p.Run(strings.NewReader("a\"b\nc\n"))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if stats.Errors != 1 {
		t.Fatalf("expected 1 error, got %d", stats.Errors)
	}
	if got := diag.String(); !strings.HasPrefix(got, "cutr: line 1: ") || strings.Count(got, "\n") != 1 {
		t.Fatalf("expected a single diagnostic line, got %q", got)
	}
}
