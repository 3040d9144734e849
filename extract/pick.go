package extract

import "github.com/arnodel/cutstream/selector"

// PickEach returns the unit at every position of every range, in range
// order.  Positions past the last unit are dropped.
func PickEach[T any](units []T, ranges []selector.Range) []T {
	var picked []T
	for _, r := range ranges {
		for p := range r.Clamp(len(units)) {
			picked = append(picked, units[p-1])
		}
	}
	return picked
}

// PickSpans returns, for each range, the contiguous run of units between its
// lowest and highest position on the line.  A descending range gives the
// same run as its ascending counterpart.  Ranges with no position on the
// line give nothing.
func PickSpans[T any](units []T, ranges []selector.Range) [][]T {
	spans := make([][]T, 0, len(ranges))
	for _, r := range ranges {
		lo, hi, ok := r.Bounds(len(units))
		if !ok {
			continue
		}
		spans = append(spans, units[lo-1:hi])
	}
	return spans
}
