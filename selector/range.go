// Package selector implements the position ranges used to pick fields, bytes
// or characters out of a line.
//
// A Range is a pair of 1-based bounds where 0 means "unset".  It stands for a
// sequence of positions which may be ascending, descending or open-ended.
// Because an open-ended range has no last position, a Range can only be
// iterated through Take or Clamp, both of which need a bound.
package selector

import (
	"iter"
	"strconv"
	"strings"
)

// A Range selects positions.  Depending on the bounds the sequence is
//
//	Start == 0 && End == 0    empty
//	Start == 0 && End > 0     1, 2, ..., End
//	Start > 0  && End == 0    Start, Start+1, ... (unbounded)
//	Start > End && End > 0    Start, Start-1, ..., End
//	0 < Start <= End          Start, Start+1, ..., End
//
// Negative bounds are treated as 0.
type Range struct {
	Start int
	End   int
}

// New returns the range from start to end.
func New(start, end int) Range {
	return Range{Start: start, End: end}
}

func (r Range) bounds() (start, end int) {
	return max(r.Start, 0), max(r.End, 0)
}

// IsEmpty returns true if r selects no position at all.
func (r Range) IsEmpty() bool {
	start, end := r.bounds()
	return start == 0 && end == 0
}

// IsOpen returns true if r has no last position.
func (r Range) IsOpen() bool {
	start, end := r.bounds()
	return start > 0 && end == 0
}

// IsReversed returns true if the positions of r come in descending order.
func (r Range) IsReversed() bool {
	start, end := r.bounds()
	return start > end && end > 0
}

// walk describes the sequence of r: its first position, its last position (0
// when open) and the step between consecutive positions.  ok is false for the
// empty range.
func (r Range) walk() (first, last, step int, ok bool) {
	start, end := r.bounds()
	switch {
	case start == 0 && end == 0:
		return 0, 0, 0, false
	case start == 0:
		return 1, end, 1, true
	case end == 0:
		return start, 0, 1, true
	case start > end:
		return start, end, -1, true
	default:
		return start, end, 1, true
	}
}

// Take returns the first k positions of r (fewer if r is shorter).
func (r Range) Take(k int) iter.Seq[int] {
	return func(yield func(int) bool) {
		first, last, step, ok := r.walk()
		if !ok {
			return
		}
		for i, p := 0, first; i < k; i, p = i+1, p+step {
			if !yield(p) || p == last {
				return
			}
		}
	}
}

// Bounds returns the smallest and largest positions of r that lie in 1..n.
// ok is false when there are none.
func (r Range) Bounds(n int) (lo, hi int, ok bool) {
	first, last, step, ok := r.walk()
	if !ok || n <= 0 {
		return 0, 0, false
	}
	lo, hi = first, last
	if step < 0 {
		lo, hi = last, first
	}
	if hi == 0 || hi > n {
		hi = n
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Clamp returns the positions of r that lie in 1..n, in the order r produces
// them.
func (r Range) Clamp(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		lo, hi, ok := r.Bounds(n)
		if !ok {
			return
		}
		if r.IsReversed() {
			for p := hi; p >= lo; p-- {
				if !yield(p) {
					return
				}
			}
			return
		}
		for p := lo; p <= hi; p++ {
			if !yield(p) {
				return
			}
		}
	}
}

// String returns r in the syntax accepted by Parse.
func (r Range) String() string {
	start, end := r.bounds()
	switch {
	case start == 0 && end == 0:
		return "0"
	case start == 0:
		return "-" + strconv.Itoa(end)
	case end == 0:
		return strconv.Itoa(start) + "-"
	case start == end:
		return strconv.Itoa(start)
	default:
		return strconv.Itoa(start) + "-" + strconv.Itoa(end)
	}
}

// Format returns a comma separated list of ranges, the inverse of ParseList.
func Format(ranges []Range) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
