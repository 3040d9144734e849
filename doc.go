// Package cutstream implements routines for extracting parts of each line of
// a stream, in the manner of cut(1).
//
// The package is organized into several sub-packages:
//
// - selector: 1-based ranges and their command-line syntax (N, N-, -M, N-M)
// - extract: field, byte and grapheme cluster extractors
// - encoding/csv: field extraction from CSV records
//
// These are combined in a Pipeline:
//
//	read line -> split terminator -> extract -> print content + terminator
//
// Each line is processed as soon as it is read, so the pipeline can start
// producing output straight away and memory use does not grow with the size
// of the input.  Line terminators ("\n", "\r\n" or none at the end of the
// input) are written back exactly as they were read.
//
// The CLI utility is in the directory cmd/cutr. You can install it with:
//
//	go install github.com/arnodel/cutstream/cmd/cutr
package cutstream
