// Package nesting derives placement suggestions for nested domains from
// their parent's grid dimensions and the refinement ratio.
package nesting

import "math"

// SuggestStart proposes a starting grid index that centers a child domain in
// its parent: floor((parentDim - childDim/ratio) / 2), never below 1. When
// the child would not fit under the given ratio the suggestion degrades to 1
// instead of going negative.
func SuggestStart(parentDim, childDim, ratio int) int {
	if ratio < 1 {
		ratio = 1
	}

	start := int(math.Floor((float64(parentDim) - float64(childDim)/float64(ratio)) / 2))
	if start < 1 {
		return 1
	}
	return start
}

// SuggestDimension proposes a child dimension of roughly a third of the
// parent's, bumped to odd for cleaner nesting.
func SuggestDimension(parentDim int) int {
	dim := parentDim / 3
	if dim < 1 {
		dim = 1
	}
	if dim%2 == 0 {
		dim++
	}
	return dim
}

// End returns the last parent grid index covered by a child of childDim grid
// points starting at start under the given ratio.
func End(start, childDim, ratio int) int {
	if ratio < 1 {
		ratio = 1
	}
	return start + ceilDiv(childDim, ratio) - 1
}

// Fits reports whether a child placed at start stays inside the parent.
func Fits(parentDim, start, childDim, ratio int) bool {
	return End(start, childDim, ratio) <= parentDim
}

// ClampToParent returns the largest start index that keeps the child inside
// the parent, with a floor of 1.
func ClampToParent(parentDim, childDim, ratio int) int {
	if ratio < 1 {
		ratio = 1
	}
	start := parentDim - ceilDiv(childDim, ratio) + 1
	if start < 1 {
		return 1
	}
	return start
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
