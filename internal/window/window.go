// Package window implements list virtualization for uniformly sized items.
//
// Given the scroll offset of a viewport, the height of that viewport and the
// height shared by every item, it works out which items of a potentially huge
// collection have to be materialized and where they sit. Every computation is
// plain arithmetic: nothing in this package iterates a collection to find the
// visible range, so the cost of a frame does not depend on how many items the
// collection holds.
package window

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned when a list cannot be built from the
// given geometry, e.g. an item height that is not strictly positive.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Range is an inclusive span of item indices. A Range whose End is lower than
// its Start is empty.
type Range struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// EmptyRange is the range returned for an empty collection.
var EmptyRange = Range{Start: 0, End: -1}

// Empty reports whether the range holds no index.
func (r Range) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether i lies within the range.
func (r Range) Contains(i int) bool {
	return !r.Empty() && i >= r.Start && i <= r.End
}

func (r Range) String() string {
	if r.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// Compute returns the range of items that must be rendered for a viewport
// scrolled to scrollOffset, including overscan extra items past each edge.
//
// An empty collection yields EmptyRange. A negative or NaN offset is read as
// zero. It fails with ErrInvalidConfiguration when itemHeight is not a
// positive finite number, when viewportHeight is negative or when overscan
// is negative.
func Compute(scrollOffset, viewportHeight, itemHeight float64, itemCount, overscan int) (Range, error) {
	if err := validateGeometry(itemHeight, viewportHeight, overscan); err != nil {
		return EmptyRange, err
	}
	return computeRange(scrollOffset, viewportHeight, itemHeight, itemCount, overscan), nil
}

// computeRange is Compute without validation, for callers that validated the
// geometry once at construction.
func computeRange(scrollOffset, viewportHeight, itemHeight float64, itemCount, overscan int) Range {
	if itemCount <= 0 {
		return EmptyRange
	}
	if scrollOffset < 0 || math.IsNaN(scrollOffset) {
		scrollOffset = 0
	}

	first := floorIndex(scrollOffset / itemHeight)
	last := floorIndex((scrollOffset + viewportHeight) / itemHeight)

	start := max(0, first-overscan)
	end := min(itemCount-1, addSaturated(last, overscan))

	// Scrolled past the end of the content: keep the last item in view rather
	// than returning an inverted range.
	if start > end {
		start = end
	}
	return Range{Start: start, End: end}
}

func validateGeometry(itemHeight, viewportHeight float64, overscan int) error {
	switch {
	case math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) || itemHeight <= 0:
		return fmt.Errorf("%w: item height must be positive, got %v", ErrInvalidConfiguration, itemHeight)
	case math.IsNaN(viewportHeight) || math.IsInf(viewportHeight, 0) || viewportHeight < 0:
		return fmt.Errorf("%w: viewport height must not be negative, got %v", ErrInvalidConfiguration, viewportHeight)
	case overscan < 0:
		return fmt.Errorf("%w: overscan must not be negative, got %d", ErrInvalidConfiguration, overscan)
	}
	return nil
}

// floorIndex converts a non-negative quotient into an index, saturating at
// math.MaxInt instead of overflowing.
func floorIndex(v float64) int {
	f := math.Floor(v)
	if f >= math.MaxInt {
		return math.MaxInt
	}
	if f <= 0 {
		return 0
	}
	return int(f)
}

func addSaturated(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
