// Package shapeinference computes, for every edge of a tensor computation
// graph, the shape (or scalar / integer-list value) that will result when
// the graph executes, without running any tensor computation.
//
// It is organized as three stages threaded through one run-scoped shape
// map: seeding converts each concrete runtime input into a per-edge record,
// dispatch walks the nodes in the caller-provided order (assumed
// topological) applying one inference rule per operator kind, and
// extraction reads the declared output edges back out. The first failure
// aborts the run; there are no partial results and no best-effort shapes.
//
// The rule library lives in ops.go: each rule is a pure function of its
// input records and the node's static attributes, reproducing the exact
// broadcasting and dimension-matching semantics the downstream compiler
// depends on.
//
// An Engine is scoped to a single run and is not safe for concurrent use;
// a host issuing concurrent runs gives each its own Engine.
package shapeinference

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"k8s.io/klog/v2"

	"github.com/lucasmagudiez/glow/graph"
	"github.com/lucasmagudiez/glow/types/shapes"
)

// VarMeta is the per-edge inferred record: the shape, plus an optional
// integer payload for edges that carry a scalar or integer list rather
// than (or alongside) a tensor.
type VarMeta struct {
	Shape    shapes.Shape
	IntValue []int64
}

// String implements stringer.
func (m VarMeta) String() string {
	if m.IntValue == nil {
		return m.Shape.String()
	}
	return fmt.Sprintf("%s value=%v", m.Shape, m.IntValue)
}

// inferRuleFn derives the output metas for one node, one meta per declared
// output edge, from the already-inferred input metas and the node's static
// attributes.
type inferRuleFn func(node *graph.Node, inputs []VarMeta) ([]VarMeta, error)

// inferRules maps each operator kind to its rule. A nil entry means the
// kind is not supported. Populated at init; adding an operator means adding
// its OpType and registering a rule here.
var inferRules [graph.OpTypeLast]inferRuleFn

// singleShape adapts a rule returning one output shape to the registry
// signature.
func singleShape(fn func(inputs []VarMeta) (shapes.Shape, error)) inferRuleFn {
	return func(_ *graph.Node, inputs []VarMeta) ([]VarMeta, error) {
		s, err := fn(inputs)
		if err != nil {
			return nil, err
		}
		return []VarMeta{{Shape: s}}, nil
	}
}

func constantRule(node *graph.Node, inputs []VarMeta) ([]VarMeta, error) {
	if len(inputs) != 0 {
		return nil, errors.Wrapf(ErrArityMismatch, "expected 0 input shapes for a constant, got %d", len(inputs))
	}
	meta, err := ConstantOp(node)
	if err != nil {
		return nil, err
	}
	return []VarMeta{meta}, nil
}

func concatRule(node *graph.Node, inputs []VarMeta) ([]VarMeta, error) {
	s, err := ConcatOp(inputs, node.Int(graph.AttrDim))
	if err != nil {
		return nil, err
	}
	return []VarMeta{{Shape: s}}, nil
}

func chunkRule(node *graph.Node, inputs []VarMeta) ([]VarMeta, error) {
	outShapes, err := ChunkOp(inputs, node.Int(graph.AttrChunks), node.Int(graph.AttrDim))
	if err != nil {
		return nil, err
	}
	metas := make([]VarMeta, 0, len(outShapes))
	for _, s := range outShapes {
		metas = append(metas, VarMeta{Shape: s})
	}
	return metas, nil
}

func init() {
	inferRules[graph.OpTypeConstant] = constantRule
	for op := range UnaryOperations {
		inferRules[op] = singleShape(UnaryOp)
	}
	for op := range BroadcastOperations {
		inferRules[op] = singleShape(BroadcastOp)
	}
	inferRules[graph.OpTypeMatMul] = singleShape(MatMulOp)
	inferRules[graph.OpTypeBatchMatMul] = singleShape(BatchMatMulOp)
	inferRules[graph.OpTypeAddMatMul] = singleShape(AddMatMulOp)
	inferRules[graph.OpTypeConcat] = concatRule
	inferRules[graph.OpTypeChunk] = chunkRule
}

// Engine performs one shape inference run over a graph. Create one with
// New, call Run once, then read the results with OutputShapes (or Metas and
// DumpShapeMap for diagnostics). The shape map is scoped to the run; no
// state survives into a second Engine over the same graph.
type Engine struct {
	graph  *graph.Graph
	inputs []Input

	// runID correlates the klog lines of one run.
	runID string

	shapeMap map[*graph.Value]VarMeta
	outputs  []shapes.Shape
}

// New returns an Engine ready to run over the graph with the given
// concrete runtime inputs, one per declared graph input edge.
func New(g *graph.Graph, inputs []Input) *Engine {
	return &Engine{
		graph:    g,
		inputs:   inputs,
		runID:    uuid.NewString(),
		shapeMap: make(map[*graph.Value]VarMeta),
	}
}

// Run seeds the graph inputs, infers every node in order and extracts the
// declared outputs. It either completes or fails outright: the first rule
// failure aborts the run with an error naming the node's operator and the
// violated constraint.
//
// A graph whose node order does not respect data dependencies, or whose
// edges are wired to more than one producer, is a defect of the upstream
// capture stage: Run panics on those rather than returning an error.
func (e *Engine) Run() error {
	if len(e.inputs) != len(e.graph.Inputs()) {
		return errors.Wrapf(ErrArityMismatch, "graph %q declares %d inputs, got %d values",
			e.graph.Name(), len(e.graph.Inputs()), len(e.inputs))
	}
	klog.V(1).Infof("shape inference run %s: graph %q, %d nodes, %d inputs",
		e.runID, e.graph.Name(), len(e.graph.Nodes()), len(e.inputs))

	if err := e.seedInputs(); err != nil {
		return err
	}
	for _, node := range e.graph.Nodes() {
		if err := e.inferNode(node); err != nil {
			return errors.WithMessagef(err, "while inferring %s node of graph %q", node.Op(), e.graph.Name())
		}
	}
	e.extractOutputs()
	return nil
}

// seedInputs writes the initial VarMeta for every graph input edge from the
// corresponding concrete runtime value.
func (e *Engine) seedInputs() error {
	for i, v := range e.graph.Inputs() {
		in := e.inputs[i]
		var meta VarMeta
		switch in.Kind() {
		case graph.KindTensor:
			meta = VarMeta{Shape: shapes.Make(in.Dims()...)}
		case graph.KindBool, graph.KindInt:
			meta = VarMeta{Shape: shapes.Scalar(), IntValue: in.Ints()}
		case graph.KindIntList:
			meta = VarMeta{
				Shape:    shapes.Make(int64(len(in.Ints())), 1),
				IntValue: in.Ints(),
			}
		default:
			return errors.Wrapf(ErrUnsupportedInputType, "input #%d (%s) has kind %s", i, v.Name(), in.Kind())
		}
		e.write(v, meta)
	}
	return nil
}

// inferNode gathers the node's input metas, dispatches to the rule for its
// operator kind and records the outputs.
func (e *Engine) inferNode(node *graph.Node) error {
	inputs := make([]VarMeta, 0, len(node.Inputs()))
	for _, v := range node.Inputs() {
		meta, found := e.shapeMap[v]
		if !found {
			// The producing node was not processed yet: the graph is not in
			// dependency order, a defect of the upstream capture stage.
			exceptions.Panicf("shapeinference: edge %q read before being produced, graph %q is not in dependency order",
				v.Name(), e.graph.Name())
		}
		inputs = append(inputs, meta)
	}

	op := node.Op()
	var rule inferRuleFn
	if op > graph.OpTypeInvalid && op < graph.OpTypeLast {
		rule = inferRules[op]
	}
	if rule == nil {
		return errors.Wrapf(ErrUnsupportedOperator, "operator %s is not supported", op)
	}

	metas, err := rule(node, inputs)
	if err != nil {
		return err
	}
	if len(metas) != len(node.Outputs()) {
		exceptions.Panicf("shapeinference: %s node declares %d outputs but its rule produced %d (graph %q)",
			op, len(node.Outputs()), len(metas), e.graph.Name())
	}
	for i, v := range node.Outputs() {
		e.write(v, metas[i])
		klog.V(2).Infof("run %s: %s -> %s = %s", e.runID, op, v.Name(), metas[i])
	}
	return nil
}

// write records the meta for an edge, enforcing the write-once invariant.
func (e *Engine) write(v *graph.Value, meta VarMeta) {
	if _, exists := e.shapeMap[v]; exists {
		exceptions.Panicf("shapeinference: edge %q written twice, graph %q wires it to more than one producer",
			v.Name(), e.graph.Name())
	}
	e.shapeMap[v] = meta
}

// extractOutputs appends the shape of every declared output edge, in
// order, to the result list.
func (e *Engine) extractOutputs() {
	e.outputs = make([]shapes.Shape, 0, len(e.graph.Outputs()))
	for _, v := range e.graph.Outputs() {
		meta, found := e.shapeMap[v]
		if !found {
			exceptions.Panicf("shapeinference: declared output %q was never produced by graph %q",
				v.Name(), e.graph.Name())
		}
		e.outputs = append(e.outputs, meta.Shape)
	}
}

// OutputShapes returns the inferred shape of every declared graph output,
// in declared order. Only valid after a successful Run.
func (e *Engine) OutputShapes() []shapes.Shape {
	return e.outputs
}

// Metas returns a copy of the full shape map, for host diagnostics. It has
// no effect on inference results.
func (e *Engine) Metas() map[*graph.Value]VarMeta {
	return maps.Clone(e.shapeMap)
}

// DumpShapeMap writes every edge's inferred record to w, sorted by edge
// name for stable output.
func (e *Engine) DumpShapeMap(w io.Writer) {
	edges := maps.Keys(e.shapeMap)
	slices.SortFunc(edges, func(a, b *graph.Value) int {
		return strings.Compare(a.Name(), b.Name())
	})
	for _, v := range edges {
		_, _ = fmt.Fprintf(w, "%s: %s\n", v.Name(), e.shapeMap[v])
	}
}
