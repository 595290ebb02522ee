// Package shapes defines Shape, the ordered list of dimension sizes the
// inference engine assigns to every edge of a computation graph.
//
// Shape carries dimensions only. The engine performs no element-type
// inference, so unlike a full tensor shape there is no data type attached;
// edges that need a declared type carry it separately (see package graph).
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a tensor.
//   - Axis: the index of one dimension. Negative axes address from the end,
//     so axis -1 is the last one.
//   - Dimension: the size of a tensor along one axis.
//   - Scalar edge: by convention of this engine, an edge whose shape is [1]
//     and whose value travels in the companion integer payload.
package shapes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
)

// Shape is the ordered sequence of dimension sizes inferred for one edge.
//
// Use Make to create one with validated dimensions. Rules that compute
// dimensions arithmetically (chunking in particular) build the struct
// directly, since their results are validated by the caller's contract
// rather than construction-time checks.
type Shape struct {
	Dimensions []int64
}

// Make returns a Shape with the given dimensions. It panics if any
// dimension is negative: concrete graph inputs and constants never have
// negative extents.
func Make(dimensions ...int64) Shape {
	s := Shape{Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%v): cannot create a shape with a negative dimension", dimensions)
		}
	}
	return s
}

// Scalar returns the engine's scalar convention, shape [1].
func Scalar() Shape {
	return Shape{Dimensions: []int64{1}}
}

// Rank of the shape, that is, the number of dimensions.
func (s Shape) Rank() int { return len(s.Dimensions) }

// Dim returns the dimension of the given axis. axis can take negative
// numbers, in which case it counts from the end -- so axis=-1 refers to the
// last axis. Like with slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int64 {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// Size returns the number of elements a tensor of this shape holds, the
// product of all dimensions.
func (s Shape) Size() (size int64) {
	size = 1
	for _, d := range s.Dimensions {
		size *= d
	}
	return
}

// Equal compares two shapes for equality, rank and every dimension.
func (s Shape) Equal(s2 Shape) bool {
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{Dimensions: slices.Clone(s.Dimensions)}
}

// String implements stringer, pretty-prints the shape as "[d0 d1 ...]".
func (s Shape) String() string {
	parts := make([]string, 0, s.Rank())
	for _, d := range s.Dimensions {
		parts = append(parts, fmt.Sprintf("%d", d))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
