package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGraphConstruction(t *testing.T) {
	g := New("mlp")
	x := g.Input("x", KindTensor)
	w := g.Input("w", KindTensor)
	require.Equal(t, []*Value{x, w}, g.Inputs())
	require.Nil(t, x.Node())

	n := g.AddNode(OpTypeMatMul, x, w)
	y := n.AddOutput("y", KindTensor)
	g.MarkOutput(y)

	require.Equal(t, OpTypeMatMul, n.Op())
	require.Equal(t, []*Value{x, w}, n.Inputs())
	require.Equal(t, []*Value{y}, n.Outputs())
	require.Same(t, n, y.Node())
	require.Equal(t, []*Value{y}, g.Outputs())
	require.Len(t, g.Nodes(), 1)
}

func TestNodeAttributes(t *testing.T) {
	g := New("attrs")
	n := g.AddNode(OpTypeChunk).SetInt(AttrDim, -1).SetInt(AttrChunks, 3)
	require.Equal(t, int64(-1), n.Int(AttrDim))
	require.Equal(t, int64(3), n.Int(AttrChunks))
	require.Panics(t, func() { n.Int("missing") })
}

func TestOpTypeStrings(t *testing.T) {
	require.Equal(t, "MatMul", OpTypeMatMul.String())
	require.Equal(t, "Concat", OpTypeConcat.String())

	op, err := OpTypeString("BatchMatMul")
	require.NoError(t, err)
	require.Equal(t, OpTypeBatchMatMul, op)

	// Lookup is case-insensitive on the lower-cased form.
	op, err = OpTypeString("chunk")
	require.NoError(t, err)
	require.Equal(t, OpTypeChunk, op)

	_, err = OpTypeString("Conv2D")
	require.Error(t, err)
}

func TestValueKindString(t *testing.T) {
	require.Equal(t, "tensor", KindTensor.String())
	require.Equal(t, "int-list", KindIntList.String())
	require.Equal(t, "invalid", ValueKind(99).String())
}
