package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/encoding/unicode"
)

// SplitFields splits content at every occurrence of the delimiter.  There is
// no quoting: content without a delimiter is a single field.
func SplitFields(content string, delimiter rune) []string {
	return strings.Split(content, string(delimiter))
}

// JoinFields is the inverse of SplitFields.
func JoinFields(fields []string, delimiter rune) string {
	return strings.Join(fields, string(delimiter))
}

// SplitBytes returns the raw bytes of content.
func SplitBytes(content string) []byte {
	return []byte(content)
}

// SplitGraphemes returns the extended grapheme clusters of content.
func SplitGraphemes(content string) []string {
	if content == "" {
		return nil
	}
	clusters := make([]string, 0, len(content))
	g := uniseg.NewGraphemes(content)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	return clusters
}

// RepairUTF8 returns b as a string, with each ill-formed subsequence
// replaced by U+FFFD.
func RepairUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	// The decoder replaces rather than fails on ill-formed input.
	repaired, _ := unicode.UTF8.NewDecoder().Bytes(b)
	return string(repaired)
}
