package shapeinference

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/lucasmagudiez/glow/graph"
	"github.com/lucasmagudiez/glow/types"
	"github.com/lucasmagudiez/glow/types/shapes"
)

var (
	// UnaryOperations preserve their single input's shape unchanged.
	UnaryOperations = types.SetWith(
		graph.OpTypeTanh,
		graph.OpTypeRelu,
		graph.OpTypeSigmoid,
	)

	// BroadcastOperations are the elementwise arithmetic operators served by
	// BroadcastOp. They take two operands plus an optional trailing scale
	// operand that is ignored for shape purposes.
	BroadcastOperations = types.SetWith(
		graph.OpTypeAdd,
		graph.OpTypeSub,
		graph.OpTypeMul,
		graph.OpTypePow,
	)
)

// Every rule in this file is a pure function of the input metas and the
// node's static attributes: no access to the shape map, no side effects.

// UnaryOp returns the output shape for shape-preserving elementwise
// operators: exactly one input, whose shape passes through unchanged.
func UnaryOp(inputs []VarMeta) (shapes.Shape, error) {
	if len(inputs) != 1 {
		return shapes.Shape{}, errors.Wrapf(ErrArityMismatch, "expected 1 input shape, got %d", len(inputs))
	}
	return inputs[0].Shape.Clone(), nil
}

// BroadcastOp returns the output shape of elementwise arithmetic between
// the first two operands; a third operand, if present, is a scale that does
// not affect the shape.
//
// A rank-1 second operand is treated as a scalar and the first operand's
// shape passes through unchanged. Only the second operand gets this test: a
// rank-1 first operand falls through to general broadcasting.
//
// General broadcasting aligns both shapes at their trailing dimension. At
// each aligned position a missing or size-1 dimension takes the other
// side's size; two sizes above 1 must be equal.
func BroadcastOp(inputs []VarMeta) (shapes.Shape, error) {
	if len(inputs) != 2 && len(inputs) != 3 {
		return shapes.Shape{}, errors.Wrapf(ErrArityMismatch, "expected 2 or 3 input shapes, got %d", len(inputs))
	}

	a := inputs[0].Shape
	b := inputs[1].Shape
	da := a.Rank()
	db := b.Rank()

	if db == 1 {
		return a.Clone(), nil
	}

	rank := max(da, db)
	dims := make([]int64, rank)
	for i := 0; i < rank; i++ {
		// j addresses the i-th dimension from the end of each shape.
		j := -1 - i
		var aDim, bDim int64
		if i < da {
			aDim = a.Dimensions[da+j]
		}
		if i < db {
			bDim = b.Dimensions[db+j]
		}
		switch {
		case i >= da || (aDim == 1 && i < db):
			dims[rank+j] = bDim
		case i >= db || bDim == 1:
			dims[rank+j] = aDim
		default:
			if aDim != bDim {
				return shapes.Shape{}, errors.Wrapf(ErrDimensionMismatch,
					"the size of tensor a (%d) must match the size of tensor b (%d) at non-singleton dimension %d",
					aDim, bDim, rank+j)
			}
			dims[rank+j] = bDim
		}
	}
	return shapes.Shape{Dimensions: dims}, nil
}

// MatMulOp returns the shape of a rank-2 matrix product: [m,k] x [k,n] -> [m,n].
func MatMulOp(inputs []VarMeta) (shapes.Shape, error) {
	if len(inputs) != 2 {
		return shapes.Shape{}, errors.Wrapf(ErrArityMismatch, "expected 2 input shapes, got %d", len(inputs))
	}
	a := inputs[0].Shape
	b := inputs[1].Shape
	if a.Rank() != 2 || b.Rank() != 2 {
		return shapes.Shape{}, errors.Wrapf(ErrRankMismatch, "expected 2-dimensional tensors, got %s and %s", a, b)
	}
	if a.Dim(1) != b.Dim(0) {
		return shapes.Shape{}, errors.Wrapf(ErrDimensionMismatch,
			"the size of tensor a (%d) at dimension 1 must match the size of tensor b (%d) at dimension 0",
			a.Dim(1), b.Dim(0))
	}
	return shapes.Make(a.Dim(0), b.Dim(1)), nil
}

// BatchMatMulOp returns the shape of a batched matrix product:
// [b,m,k] x [b,k,n] -> [b,m,n].
func BatchMatMulOp(inputs []VarMeta) (shapes.Shape, error) {
	if len(inputs) != 2 {
		return shapes.Shape{}, errors.Wrapf(ErrArityMismatch, "expected 2 input shapes, got %d", len(inputs))
	}
	a := inputs[0].Shape
	b := inputs[1].Shape
	if a.Rank() != 3 || b.Rank() != 3 {
		return shapes.Shape{}, errors.Wrapf(ErrRankMismatch, "expected 3-dimensional tensors, got %s and %s", a, b)
	}
	if a.Dim(0) != b.Dim(0) {
		return shapes.Shape{}, errors.Wrapf(ErrDimensionMismatch,
			"expected tensors to have the same size at dimension 0, got %d and %d", a.Dim(0), b.Dim(0))
	}
	if a.Dim(2) != b.Dim(1) {
		return shapes.Shape{}, errors.Wrapf(ErrDimensionMismatch,
			"the size of tensor a (%d) at dimension 2 must match the size of tensor b (%d) at dimension 1",
			a.Dim(2), b.Dim(1))
	}
	return shapes.Make(a.Dim(0), a.Dim(1), b.Dim(2)), nil
}

// AddMatMulOp returns the shape of the affine combination
// self + mat1 x mat2, with optional trailing scale operands ignored.
//
// When mat2's shape has rank 1 it is taken as a scalar operand: the matrix
// product step is skipped and mat1's shape stands in for the product. The
// final shape is the broadcast of self with that product shape.
func AddMatMulOp(inputs []VarMeta) (shapes.Shape, error) {
	if len(inputs) < 3 {
		return shapes.Shape{}, errors.Wrapf(ErrArityMismatch, "expected at least 3 input shapes, got %d", len(inputs))
	}
	var product shapes.Shape
	if inputs[2].Shape.Rank() == 1 {
		product = inputs[1].Shape.Clone()
	} else {
		var err error
		product, err = MatMulOp(inputs[1:3])
		if err != nil {
			return shapes.Shape{}, err
		}
	}
	return BroadcastOp([]VarMeta{inputs[0], {Shape: product}})
}

// ConcatOp returns the shape of concatenating all inputs along the axis
// dim, which may be negative to count from the end of the first input's
// shape. A single input passes through unchanged, with no axis validation,
// matching the source semantics.
func ConcatOp(inputs []VarMeta, dim int64) (shapes.Shape, error) {
	if len(inputs) < 1 {
		return shapes.Shape{}, errors.Wrapf(ErrArityMismatch, "expected at least 1 input shape, got %d", len(inputs))
	}
	if len(inputs) == 1 {
		return inputs[0].Shape.Clone(), nil
	}

	first := inputs[0].Shape
	rank := int64(first.Rank())
	axis := dim
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return shapes.Shape{}, errors.Wrapf(ErrDimensionOutOfRange,
			"concat dimension %d is out of range for rank %d", dim, rank)
	}

	out := first.Clone()
	for i := 1; i < len(inputs); i++ {
		s := inputs[i].Shape
		if int64(s.Rank()) != rank {
			return shapes.Shape{}, errors.Wrapf(ErrRankMismatch,
				"all inputs must have the same number of dimensions, got %d and %d", rank, s.Rank())
		}
		for j := int64(0); j < rank; j++ {
			if j == axis {
				out.Dimensions[axis] += s.Dimensions[axis]
				continue
			}
			if out.Dimensions[j] != s.Dimensions[j] {
				return shapes.Shape{}, errors.Wrapf(ErrDimensionMismatch,
					"sizes of tensors must match except in dimension %d, got %d and %d at dimension %d",
					axis, first.Dimensions[j], s.Dimensions[j], j)
			}
		}
	}
	return out, nil
}

// ChunkOp splits the single input into chunks output shapes along axis dim
// (negative dim counts from the end). All chunks take
// ceil(size/chunks) at the split axis except the last, which takes the
// remainder -- possibly smaller, and for a large enough remainder zero or
// negative. The arithmetic is emitted as computed; callers validate the
// boundary rather than having it silently adjusted here.
func ChunkOp(inputs []VarMeta, chunks, dim int64) ([]shapes.Shape, error) {
	if len(inputs) != 1 {
		return nil, errors.Wrapf(ErrArityMismatch, "expected 1 input shape, got %d", len(inputs))
	}
	if chunks < 1 {
		return nil, errors.Wrapf(ErrDimensionOutOfRange, "chunks must be positive, got %d", chunks)
	}

	in := inputs[0].Shape
	rank := int64(in.Rank())
	axis := dim
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return nil, errors.Wrapf(ErrDimensionOutOfRange,
			"chunk dimension %d is out of range for rank %d", dim, rank)
	}

	size := in.Dimensions[axis]
	chunkSize := (size + chunks - 1) / chunks
	lastSize := size - chunkSize*(chunks-1)

	out := make([]shapes.Shape, 0, chunks)
	for i := int64(0); i < chunks; i++ {
		s := in.Clone()
		if i == chunks-1 {
			s.Dimensions[axis] = lastSize
		} else {
			s.Dimensions[axis] = chunkSize
		}
		out = append(out, s)
	}
	return out, nil
}

// ConstantOp materializes the node's embedded literal into a VarMeta for
// its single output edge.
//
// The literal's kind derives either dimensions (float scalar -> [1],
// tensor -> its own dims, none -> []) or an integer payload (int and bool
// scalars). Routing then follows the output edge's declared type: a tensor
// edge stores the derived dims as the shape; any other edge stores shape
// [1] with the derived payload as the integer value.
func ConstantOp(node *graph.Node) (VarMeta, error) {
	lit := node.Literal()
	if lit == nil {
		lit = &graph.Literal{Kind: graph.KindNone}
	}

	var derived []int64
	switch lit.Kind {
	case graph.KindFloat:
		// A float scalar does not affect any downstream shape.
		derived = []int64{1}
	case graph.KindInt, graph.KindBool:
		derived = []int64{lit.Int}
	case graph.KindNone:
		derived = []int64{}
	case graph.KindTensor:
		derived = lit.Dims
	default:
		return VarMeta{}, errors.Wrapf(ErrUnsupportedInputType, "constant literal of kind %s", lit.Kind)
	}

	out := node.Outputs()[0]
	if out.Kind() == graph.KindTensor {
		return VarMeta{Shape: shapes.Shape{Dimensions: slices.Clone(derived)}}, nil
	}
	return VarMeta{Shape: shapes.Scalar(), IntValue: derived}, nil
}
