package shapeinference

import (
	"slices"
	"strings"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"

	"github.com/lucasmagudiez/glow/graph"
	"github.com/lucasmagudiez/glow/types/shapes"
)

func TestSeeding(t *testing.T) {
	g := graph.New("seeds")
	xT := g.Input("t", graph.KindTensor)
	xB := g.Input("b", graph.KindBool)
	xI := g.Input("i", graph.KindInt)
	xL := g.Input("l", graph.KindIntList)
	for _, v := range g.Inputs() {
		g.MarkOutput(v)
	}

	e := New(g, []Input{
		TensorInput(dtypes.Float32, 2, 3, 4),
		BoolInput(true),
		IntInput(-5),
		IntListInput(4, 5, 6),
	})
	require.NoError(t, e.Run())

	metas := e.Metas()
	require.True(t, shapes.Make(2, 3, 4).Equal(metas[xT].Shape))
	require.Nil(t, metas[xT].IntValue)

	require.True(t, shapes.Make(1).Equal(metas[xB].Shape))
	require.Equal(t, []int64{1}, metas[xB].IntValue)

	require.True(t, shapes.Make(1).Equal(metas[xI].Shape))
	require.Equal(t, []int64{-5}, metas[xI].IntValue)

	require.True(t, shapes.Make(3, 1).Equal(metas[xL].Shape))
	require.Equal(t, []int64{4, 5, 6}, metas[xL].IntValue)

	// Outputs carry the seeded shapes in declared order.
	out := e.OutputShapes()
	require.Len(t, out, 4)
	require.True(t, shapes.Make(2, 3, 4).Equal(out[0]))
	require.True(t, shapes.Make(3, 1).Equal(out[3]))
}

func TestSeedingArityMismatch(t *testing.T) {
	g := graph.New("two-inputs")
	g.Input("a", graph.KindTensor)
	g.Input("b", graph.KindTensor)

	e := New(g, []Input{TensorInput(dtypes.Float32, 2)})
	err := e.Run()
	require.ErrorIs(t, err, ErrArityMismatch)
	require.Contains(t, err.Error(), "2")
	require.Contains(t, err.Error(), "1")
}

func TestSeedingUnsupportedInput(t *testing.T) {
	g := graph.New("bad-input")
	g.Input("a", graph.KindTensor)

	// The zero Input has no recognized kind.
	err := New(g, []Input{{}}).Run()
	require.ErrorIs(t, err, ErrUnsupportedInputType)
}

// buildMLP assembles a small network exercising every operator family:
//
//	h   = relu(b1 + x @ w1)
//	y   = h @ w2
//	a,b = chunk(y, chunks=2, dim=-1)
//	z   = concat(a, b, dim=1)
func buildMLP() (*graph.Graph, []Input) {
	g := graph.New("mlp")
	x := g.Input("x", graph.KindTensor)
	w1 := g.Input("w1", graph.KindTensor)
	b1 := g.Input("b1", graph.KindTensor)
	w2 := g.Input("w2", graph.KindTensor)

	h := g.AddNode(graph.OpTypeAddMatMul, b1, x, w1).AddOutput("h", graph.KindTensor)
	h2 := g.AddNode(graph.OpTypeRelu, h).AddOutput("h2", graph.KindTensor)
	y := g.AddNode(graph.OpTypeMatMul, h2, w2).AddOutput("y", graph.KindTensor)

	chunk := g.AddNode(graph.OpTypeChunk, y).SetInt(graph.AttrChunks, 2).SetInt(graph.AttrDim, -1)
	a := chunk.AddOutput("a", graph.KindTensor)
	b := chunk.AddOutput("b", graph.KindTensor)

	z := g.AddNode(graph.OpTypeConcat, a, b).SetInt(graph.AttrDim, 1).AddOutput("z", graph.KindTensor)
	g.MarkOutput(z)
	g.MarkOutput(a)

	inputs := []Input{
		TensorInput(dtypes.Float32, 32, 784),
		TensorInput(dtypes.Float32, 784, 256),
		TensorInput(dtypes.Float32, 1, 256),
		TensorInput(dtypes.Float32, 256, 64),
	}
	return g, inputs
}

func TestRunMLP(t *testing.T) {
	g, inputs := buildMLP()
	e := New(g, inputs)
	require.NoError(t, e.Run())

	out := e.OutputShapes()
	require.Len(t, out, 2)
	require.True(t, shapes.Make(32, 64).Equal(out[0]), "got %s", out[0])
	require.True(t, shapes.Make(32, 32).Equal(out[1]), "got %s", out[1])
}

func TestRunIdempotence(t *testing.T) {
	// Two engines over the same graph and inputs: identical output lists,
	// no state leaks between runs.
	g, inputs := buildMLP()
	e1 := New(g, inputs)
	e2 := New(g, inputs)
	require.NoError(t, e1.Run())
	require.NoError(t, e2.Run())

	out1, out2 := e1.OutputShapes(), e2.OutputShapes()
	require.Equal(t, len(out1), len(out2))
	for i := range out1 {
		require.True(t, out1[i].Equal(out2[i]))
	}
}

func TestRunFailureNamesOperator(t *testing.T) {
	g := graph.New("bad-mm")
	a := g.Input("a", graph.KindTensor)
	b := g.Input("b", graph.KindTensor)
	g.MarkOutput(g.AddNode(graph.OpTypeMatMul, a, b).AddOutput("y", graph.KindTensor))

	e := New(g, []Input{
		TensorInput(dtypes.Float32, 3, 4),
		TensorInput(dtypes.Float32, 7, 5),
	})
	err := e.Run()
	require.ErrorIs(t, err, ErrDimensionMismatch)
	require.Contains(t, err.Error(), "MatMul")
	require.Contains(t, err.Error(), "(4)")
	require.Contains(t, err.Error(), "(7)")
}

func TestRunConstant(t *testing.T) {
	g := graph.New("consts")
	ci := g.AddNode(graph.OpTypeConstant).
		SetLiteral(&graph.Literal{Kind: graph.KindInt, Int: 5}).
		AddOutput("five", graph.KindInt)
	ct := g.AddNode(graph.OpTypeConstant).
		SetLiteral(&graph.Literal{Kind: graph.KindTensor, Dims: []int64{4, 4}}).
		AddOutput("eye", graph.KindTensor)
	g.MarkOutput(ci)
	g.MarkOutput(ct)

	e := New(g, nil)
	require.NoError(t, e.Run())

	metas := e.Metas()
	require.True(t, shapes.Make(1).Equal(metas[ci].Shape))
	require.Equal(t, []int64{5}, metas[ci].IntValue)
	require.True(t, shapes.Make(4, 4).Equal(metas[ct].Shape))

	out := e.OutputShapes()
	require.True(t, shapes.Make(1).Equal(out[0]))
	require.True(t, shapes.Make(4, 4).Equal(out[1]))
}

func TestRunUnsupportedOperator(t *testing.T) {
	g := graph.New("unsupported")
	a := g.Input("a", graph.KindTensor)
	g.MarkOutput(g.AddNode(graph.OpTypeInvalid, a).AddOutput("y", graph.KindTensor))

	err := New(g, []Input{TensorInput(dtypes.Float32, 2)}).Run()
	require.ErrorIs(t, err, ErrUnsupportedOperator)
	require.Contains(t, err.Error(), "Invalid")
}

func TestRunDanglingEdgePanics(t *testing.T) {
	// A node consuming an edge no earlier node (and no graph input)
	// produces means the node list does not respect data dependencies,
	// a defect of the upstream capture stage, not a validation failure.
	other := graph.New("other")
	foreign := other.AddNode(graph.OpTypeConstant).AddOutput("foreign", graph.KindTensor)

	g := graph.New("dangling")
	n := g.AddNode(graph.OpTypeRelu, foreign)
	g.MarkOutput(n.AddOutput("y", graph.KindTensor))

	e := New(g, nil)
	require.Panics(t, func() { _ = e.Run() })
}

func TestDumpShapeMap(t *testing.T) {
	g, inputs := buildMLP()
	e := New(g, inputs)
	require.NoError(t, e.Run())

	var sb strings.Builder
	e.DumpShapeMap(&sb)
	dump := sb.String()
	require.Contains(t, dump, "h2: [32 256]")
	require.Contains(t, dump, "z: [32 64]")

	// Name-sorted for stable output.
	lines := strings.Split(strings.TrimSpace(dump), "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		name, _, found := strings.Cut(line, ":")
		require.True(t, found, "malformed dump line %q", line)
		names = append(names, name)
	}
	require.True(t, slices.IsSorted(names), "dump not sorted by edge name:\n%s", dump)
}
