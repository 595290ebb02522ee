package graph

// OpType is an enum of the operator kinds the shape inference engine knows
// how to derive output shapes for.
//
// Nothing precludes a host from building graphs with other operator kinds;
// inference over such a graph fails with an unsupported-operator error
// naming the kind, rather than guessing a shape.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota

	// OpTypeConstant materializes an embedded literal; it has no inputs.
	OpTypeConstant

	// Elementwise activations, shape preserving.

	OpTypeTanh
	OpTypeRelu
	OpTypeSigmoid

	// Elementwise arithmetic with broadcasting.

	OpTypeAdd
	OpTypeSub
	OpTypeMul
	OpTypePow

	OpTypeMatMul
	OpTypeBatchMatMul

	// OpTypeAddMatMul is the affine combination self + mat1 @ mat2,
	// optionally followed by ignored scale operands.
	OpTypeAddMatMul

	OpTypeConcat
	OpTypeChunk

	// OpTypeLast should always be kept the last, it is used as a counter/marker for OpType.
	OpTypeLast
)

// Attribute names read by the inference rules.
const (
	// AttrDim is the concatenation/split axis, possibly negative.
	AttrDim = "dim"
	// AttrChunks is the number of outputs a chunk node splits into.
	AttrChunks = "chunks"
)
