package shapeinference

import (
	"slices"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/lucasmagudiez/glow/graph"
)

// Input is one concrete runtime value supplied for a graph input edge.
//
// It is a tagged union the seeder reads only through Kind and the typed
// accessors: the engine never looks at tensor element data, just extents.
// Use the constructors (TensorInput, IntInput, BoolInput, IntListInput) to
// build one.
type Input struct {
	kind  graph.ValueKind
	dims  []int64
	ints  []int64
	dtype dtypes.DType
}

// TensorInput describes a concrete tensor by its element type and dimension
// sizes. The element type is carried for diagnostics only and never
// participates in inference.
func TensorInput(dtype dtypes.DType, dims ...int64) Input {
	return Input{kind: graph.KindTensor, dtype: dtype, dims: slices.Clone(dims)}
}

// IntInput describes an integer scalar input.
func IntInput(value int64) Input {
	return Input{kind: graph.KindInt, ints: []int64{value}}
}

// BoolInput describes a boolean scalar input, seeded as the integer 1 or 0.
func BoolInput(value bool) Input {
	var v int64
	if value {
		v = 1
	}
	return Input{kind: graph.KindBool, ints: []int64{v}}
}

// IntListInput describes an ordered list of integers.
func IntListInput(values ...int64) Input {
	return Input{kind: graph.KindIntList, ints: slices.Clone(values)}
}

// Kind returns the tag of the union.
func (in Input) Kind() graph.ValueKind { return in.kind }

// Dims returns the tensor dimension sizes; meaningful only for tensor inputs.
func (in Input) Dims() []int64 { return in.dims }

// Ints returns the carried integer value(s); meaningful for int, bool and
// int-list inputs.
func (in Input) Ints() []int64 { return in.ints }

// DType returns the tensor element type tag, for diagnostics.
func (in Input) DType() dtypes.DType { return in.dtype }
